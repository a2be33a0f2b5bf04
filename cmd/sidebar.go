package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sidebarCmd = &cobra.Command{
	Use:       "sidebar [toggle|open|close]",
	Short:     "Show or change whether the chat sidebar starts open",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"toggle", "open", "close"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			switch args[0] {
			case "toggle":
				_, err = a.prefs.ToggleSidebar()
			case "open":
				err = a.prefs.SetSidebarOpen(true)
			case "close":
				err = a.prefs.SetSidebarOpen(false)
			default:
				return fmt.Errorf("unknown sidebar action %q (supported: toggle, open, close)", args[0])
			}
			if err != nil {
				return err
			}
		}

		state := "closed"
		if a.prefs.SidebarOpen() {
			state = "open"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sidebar: %s\n", state)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sidebarCmd)
}
