package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [toggle|dark|light]",
	Short:     "Show or change the colour theme",
	Long:      `Show the colour theme, or switch it. The theme is shared with the interactive chat (Ctrl+T).`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"toggle", "dark", "light"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			switch args[0] {
			case "toggle":
				_, err = a.prefs.ToggleDark()
			case "dark":
				err = a.prefs.SetDark(true)
			case "light":
				err = a.prefs.SetDark(false)
			default:
				return fmt.Errorf("unknown theme action %q (supported: toggle, dark, light)", args[0])
			}
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", a.prefs.ThemeName())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
