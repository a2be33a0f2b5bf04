package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/api"
	"github.com/iksnae/studymind/internal/panel"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the files saved on the backend",
	Long: `List the files saved on the backend (content, quizzes, admin output,
ideas, uploads) and the number of grading entries.

For conversations kept on this machine see 'studymind sessions'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		h := panel.NewHistory(a.client)
		var hist *api.History
		err = internal.ShowProgress(ctx, "Loading history", func() error {
			var err error
			hist, err = h.Load(ctx)
			return err
		})
		if err != nil {
			return panelError(err)
		}

		out := cmd.OutOrStdout()
		if len(hist.Items) == 0 {
			fmt.Fprintln(out, "No saved files")
		} else {
			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📁 %s", english.Plural(len(hist.Items), "saved file", ""))))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tNAME")
			for _, item := range hist.Items {
				fmt.Fprintf(w, "%s\t%s\n", item.Type, item.Name)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "\nGrading entries: %d\n", hist.GradingEntries)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
