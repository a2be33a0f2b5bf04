package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
)

var contextFile string

var contextCmd = &cobra.Command{
	Use:   "context [show|clear|set <text>]",
	Short: "Manage the context text used by content and quizzes",
	Long: `The context text is appended to 'content create' input and offered with
'quiz' topics. It is usually set by 'upload --use-as-context'.

Examples:
  studymind context
  studymind context set "Chapter 3 covers hash tables"
  studymind context set --file notes.txt
  studymind context clear`,
	RunE: func(cmd *cobra.Command, args []string) error {
		action := "show"
		if len(args) > 0 {
			action = args[0]
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		w := cmd.OutOrStdout()
		switch action {
		case "show":
			if len(args) > 1 {
				return fmt.Errorf("show takes no arguments")
			}
			text := a.prefs.ContextText()
			if strings.TrimSpace(text) == "" {
				fmt.Fprintln(w, "No context text")
				return nil
			}
			fmt.Fprintln(cmd.ErrOrStderr(), hintStyle.Render(fmt.Sprintf("%s characters", humanize.Comma(int64(len(text))))))
			fmt.Fprintln(w, text)
		case "clear":
			if err := a.prefs.ClearContextText(); err != nil {
				return err
			}
			internal.PrintSuccess("Context text cleared")
		case "set":
			text, err := readInput(args[1:], contextFile)
			if err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("context text is empty")
			}
			if err := a.prefs.SetContextText(text); err != nil {
				return err
			}
			internal.PrintSuccess(fmt.Sprintf("Context text set (%s characters)", humanize.Comma(int64(len(text)))))
		default:
			return fmt.Errorf("unknown context action %q (supported: show, clear, set)", action)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.Flags().StringVarP(&contextFile, "file", "f", "", "Read the context text from a file (with set)")
}
