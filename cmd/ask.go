package cmd

import (
	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/panel"
)

var askCmd = &cobra.Command{
	Use:     "ask [question]",
	Aliases: []string{"mentor"},
	Short:   "Ask how to use StudyMind",
	Long: `Ask the product mentor a question about StudyMind.

Without a question, "` + panel.DefaultHelpQuestion + `" is asked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := panel.HelpForm{Question: panel.DefaultHelpQuestion}
		if len(args) > 0 {
			form.Question, _ = readInput(args, "")
		}
		if err := form.Validate(); err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		help := panel.NewHelp(a.client)
		var out string
		err = internal.ShowProgress(ctx, "Asking the mentor", func() error {
			var err error
			out, err = help.Ask(ctx, form)
			return err
		})
		if err != nil {
			return panelError(err)
		}
		a.printResult(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
