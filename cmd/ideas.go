package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/panel"
)

var (
	ideasLevel        string
	ideasNoVariations bool
	ideasSave         bool
)

var ideasCmd = &cobra.Command{
	Use:   "ideas [topic]",
	Short: "Suggest project ideas",
	Long: `Suggest project ideas for a topic and level. The topic defaults to
"Data Structures".

Examples:
  studymind ideas
  studymind ideas "Operating systems" --level advanced --no-variations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := panel.NewIdeasForm()
		if len(args) > 0 {
			form.Topic, _ = readInput(args, "")
		}
		form.Level = internal.Difficulty(ideasLevel)
		form.Variations = !ideasNoVariations
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

		ideas := panel.NewIdeas(a.client)
		var out string
		err = internal.ShowProgress(ctx, fmt.Sprintf("Thinking about %s", form.Topic), func() error {
			var err error
			out, err = ideas.Run(ctx, form)
			return err
		})
		if err != nil {
			return panelError(err)
		}
		a.printResult(cmd.OutOrStdout(), out)

		if ideasSave {
			return saveOutput(cmd, ideas.Save)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ideasCmd)
	ideasCmd.Flags().StringVarP(&ideasLevel, "level", "l", string(internal.DifficultyBeginner), "Level (beginner, intermediate, advanced)")
	ideasCmd.Flags().BoolVar(&ideasNoVariations, "no-variations", false, "Skip variations of each idea")
	ideasCmd.Flags().BoolVar(&ideasSave, "save", false, "Save the ideas on the backend")
}
