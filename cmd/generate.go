package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/panel"
)

var (
	generateFile   string
	generateUpload bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <summarize|quiz|flashcards|explain> [text]",
	Short: "Summarize, quiz, make flashcards or explain study text",
	Long: `Run one of the study operations over a piece of text:

  summarize    Get key points and main ideas
  quiz         Test your understanding
  flashcards   Create study cards
  explain      Detailed breakdown of concepts

The text is taken from the arguments or from --file. Use --upload to send the
file to the backend for extraction first (required for PDFs).`,
	Args: cobra.MinimumNArgs(1),
	ValidArgs: []string{
		string(internal.TaskSummarize), string(internal.TaskQuiz),
		string(internal.TaskFlashcards), string(internal.TaskExplain),
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := internal.ParseTask(args[0])
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		var text string
		if generateUpload && generateFile != "" {
			upload := panel.NewUpload(a.client, nil)
			err := internal.ShowProgress(ctx, "Extracting text", func() error {
				res, err := upload.Extract(ctx, panel.UploadForm{Path: generateFile})
				if err != nil {
					return err
				}
				return res.Check()
			})
			if err != nil {
				return err
			}
			text = upload.Extracted()
		} else {
			text, err = readInput(args[1:], generateFile)
			if err != nil {
				return err
			}
		}

		gen := panel.NewGenerator(a.client)
		var out string
		err = internal.ShowProgress(ctx, fmt.Sprintf("Creating your %s", task.Label()), func() error {
			var runErr error
			out, runErr = gen.Run(ctx, panel.GenerateForm{Text: text, Task: task})
			return runErr
		})
		if err != nil {
			return panelError(err)
		}

		a.printResult(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "", "Read the text from a file")
	generateCmd.Flags().BoolVar(&generateUpload, "upload", false, "Extract the file's text on the backend (PDF, TXT)")
}
