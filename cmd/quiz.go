package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/api"
	"github.com/iksnae/studymind/internal/panel"
)

var (
	quizDifficulty string
	quizType       string
	quizCount      int
	quizSave       bool
)

var quizCmd = &cobra.Command{
	Use:   "quiz <topic>",
	Short: "Generate a quiz on a topic",
	Long: `Generate a multiple-choice or short-answer quiz on a topic.

The stored context text (see 'studymind context') is offered to the backend
along with the topic.

Examples:
  studymind quiz "Photosynthesis"
  studymind quiz "Graph algorithms" --type short --count 10 --difficulty advanced --save`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := readInput(args, "")
		form := panel.NewQuizForm(topic)
		form.Difficulty = internal.Difficulty(quizDifficulty)
		form.Type = api.QuizType(quizType)
		form.Count = quizCount
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

		q := panel.NewQuiz(a.client, a.prefs)
		var out string
		err = internal.ShowProgress(ctx, fmt.Sprintf("Writing %d questions", form.Count), func() error {
			var err error
			out, err = q.Generate(ctx, form)
			return err
		})
		if err != nil {
			return panelError(err)
		}
		a.printResult(cmd.OutOrStdout(), out)

		if quizSave {
			return saveOutput(cmd, q.Save)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quizCmd)
	quizCmd.Flags().StringVarP(&quizDifficulty, "difficulty", "d", string(internal.DifficultyBeginner), "Difficulty (beginner, intermediate, advanced)")
	quizCmd.Flags().StringVarP(&quizType, "type", "t", string(api.QuizMCQ), "Question type (mcq, short)")
	quizCmd.Flags().IntVarP(&quizCount, "count", "n", 5, fmt.Sprintf("Number of questions (%d-%d)", panel.MinQuizQuestions, panel.MaxQuizQuestions))
	quizCmd.Flags().BoolVar(&quizSave, "save", false, "Save the quiz on the backend")
}
