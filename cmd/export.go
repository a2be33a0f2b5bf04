package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/export"
)

var (
	format      string
	outputDir   string
	sessionID   string
	exportSince string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved conversations to files",
	Long: `Export archived conversations to files, one per conversation (` + strings.Join(export.Formats(), ", ") + `).

You can export all conversations, the ones updated since a point in time, or a
single conversation by ID. Use 'studymind sessions' to see available IDs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		var sinceTime time.Time
		if exportSince != "" {
			sinceTime, err = time.Parse(time.RFC3339, exportSince)
			if err != nil {
				return fmt.Errorf("invalid --since timestamp format (expected RFC3339): %w", err)
			}
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		var records []*internal.ConversationRecord
		var sessions []*internal.Session
		steps := []internal.ProgressStep{
			{
				Message: "Loading conversations",
				Fn: func() error {
					if sessionID != "" {
						rec, err := a.store.LoadConversation(sessionID)
						if err != nil {
							return fmt.Errorf("%w (use 'studymind sessions' to see saved conversations)", err)
						}
						records = []*internal.ConversationRecord{rec}
						return nil
					}
					var err error
					records, err = a.store.LoadAllConversations()
					return err
				},
			},
			{
				Message: "Normalizing conversations",
				Fn: func() error {
					if !sinceTime.IsZero() {
						filtered := make([]*internal.ConversationRecord, 0, len(records))
						for _, rec := range records {
							if !rec.UpdatedAt.Before(sinceTime) {
								filtered = append(filtered, rec)
							}
						}
						records = filtered
					}
					sessions = internal.NewNormalizer(a.cfg.UserID).NormalizeAll(records)
					return nil
				},
			},
		}
		if err := internal.ShowProgressWithSteps(ctx, steps); err != nil {
			return err
		}

		if len(sessions) == 0 {
			internal.PrintInfo("No conversations to export")
			return nil
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		exported := 0
		err = internal.ShowProgress(ctx, fmt.Sprintf("Exporting %d conversation(s) to %s", len(sessions), outputDir), func() error {
			for _, session := range sessions {
				filename := fmt.Sprintf("session_%s.%s", session.ID, exporter.Extension())
				path := filepath.Join(outputDir, filename)

				file, err := os.Create(path)
				if err != nil {
					internal.LogError("Failed to create file %s: %v", path, err)
					continue
				}

				if err := exporter.Export(session, file); err != nil {
					_ = file.Close()
					internal.LogError("Failed to export conversation %s: %v", session.ID, err)
					continue
				}

				if err := file.Close(); err != nil {
					internal.LogWarn("Failed to close file %s: %v", path, err)
				}
				exported++
			}
			return nil
		})
		if err != nil {
			return err
		}

		internal.PrintSuccess(fmt.Sprintf("Export complete: %d conversation(s) exported to %s", exported, outputDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format ("+strings.Join(export.Formats(), ", ")+")")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&sessionID, "session-id", "", "Export a specific conversation by ID")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "Only export conversations updated since timestamp (RFC3339)")
}
