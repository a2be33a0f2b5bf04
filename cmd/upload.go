package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/api"
	"github.com/iksnae/studymind/internal/panel"
)

var (
	uploadUseAsContext bool
	uploadSave         bool
	uploadQuiet        bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Extract text from a PDF or text file",
	Long: `Upload a document to the backend and print the extracted text.

With --use-as-context the text becomes the context for 'content create' and
'quiz'. With --save it is stored on the backend as "upload".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		upload := panel.NewUpload(a.client, a.prefs)
		var res *api.UploadResult
		err = internal.ShowProgress(ctx, fmt.Sprintf("Uploading %s", args[0]), func() error {
			var err error
			res, err = upload.Extract(ctx, panel.UploadForm{Path: args[0]})
			return err
		})
		if err != nil {
			return panelError(err)
		}

		status := res.ExtractionStatus
		if status == "" {
			status = "done"
		}
		fmt.Fprintln(cmd.ErrOrStderr(), hintStyle.Render(fmt.Sprintf("%s: %s characters extracted (%s)",
			res.Filename, humanize.Comma(int64(res.CharCount)), status)))
		if err := res.Check(); err != nil {
			internal.PrintWarning(api.Reason(err))
		}
		if !uploadQuiet {
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(upload.Extracted()))
		}

		if uploadUseAsContext {
			if err := upload.UseAsContext(); err != nil {
				return err
			}
			internal.PrintSuccess("Extracted text stored as context")
		}
		if uploadSave {
			return saveOutput(cmd, upload.Save)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().BoolVar(&uploadUseAsContext, "use-as-context", false, "Store the extracted text as context for content and quizzes")
	uploadCmd.Flags().BoolVar(&uploadSave, "save", false, "Save the extracted text on the backend")
	uploadCmd.Flags().BoolVarP(&uploadQuiet, "quiet", "q", false, "Do not print the extracted text")
}
