package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
)

var (
	limit int
	since string
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <conversation-id>",
	Short: "Show the messages of a saved conversation",
	Long:  `Display the messages of an archived conversation. Use 'studymind sessions' to find ids.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.store.LoadConversation(args[0])
		if err != nil {
			return err
		}
		session, err := internal.NewNormalizer(a.cfg.UserID).NormalizeConversation(rec)
		if err != nil {
			return fmt.Errorf("failed to normalize conversation: %w", err)
		}

		var sinceTime *time.Time
		if since != "" {
			parsed, err := time.Parse(time.RFC3339, since)
			if err != nil {
				return fmt.Errorf("invalid --since timestamp format (expected RFC3339): %w", err)
			}
			sinceTime = &parsed
		}

		out := cmd.OutOrStdout()
		displaySessionHeader(out, session)

		entries := filterEntries(session.Messages, sinceTime)
		totalFiltered := len(entries)
		if limit > 0 && limit < len(entries) {
			entries = entries[:limit]
		}

		for i, entry := range entries {
			displayMessage(out, i+1, entry, totalFiltered)
		}

		if limit > 0 && limit < totalFiltered {
			remaining := totalFiltered - limit
			fmt.Fprintln(out)
			fmt.Fprintln(out, lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true).
				Render(fmt.Sprintf("... (%d more message(s))", remaining)))
		}

		return nil
	},
}

// filterEntries keeps the entries at or after since; entries without a
// timestamp are dropped when since is set
func filterEntries(entries []internal.Entry, since *time.Time) []internal.Entry {
	if since == nil {
		return entries
	}
	filtered := make([]internal.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Timestamp == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, e.Timestamp); err == nil && !t.Before(*since) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func displaySessionHeader(out io.Writer, session *internal.Session) {
	if session == nil {
		return
	}
	title := session.Metadata.Title
	if title == "" {
		title = "Untitled"
	}
	fmt.Fprintln(out, sessionHeaderStyle.Render(fmt.Sprintf("💬 %s", title)))

	var metaParts []string
	if session.Metadata.CreatedAt != "" {
		metaParts = append(metaParts, fmt.Sprintf("Created: %s", session.Metadata.CreatedAt))
	}
	metaParts = append(metaParts, fmt.Sprintf("Messages: %d", len(session.Messages)))
	metaParts = append(metaParts, fmt.Sprintf("ID: %s", session.ID))

	fmt.Fprintln(out, sessionMetaStyle.Render(strings.Join(metaParts, " • ")))
	fmt.Fprintln(out)
}

func displayMessage(out io.Writer, index int, entry internal.Entry, total int) {
	var actorStyle lipgloss.Style
	var actorLabel string

	switch entry.Actor {
	case "user":
		actorStyle = userMessageStyle
		actorLabel = "👤 You"
	default:
		actorStyle = assistantMessageStyle
		actorLabel = "🤖 StudyMind"
	}
	if entry.Task != "" {
		if task, err := internal.ParseTask(entry.Task); err == nil {
			actorLabel += " · " + task.Label()
		}
	}

	header := actorStyle.Render(actorLabel) + " " + timestampStyle.Render(fmt.Sprintf("[%d/%d]", index, total))
	if entry.Timestamp != "" {
		if t, err := time.Parse(time.RFC3339, entry.Timestamp); err == nil {
			header += " " + timestampStyle.Render(t.Local().Format("15:04:05"))
		} else {
			header += " " + timestampStyle.Render(entry.Timestamp)
		}
	}
	fmt.Fprintln(out, header)

	content := strings.TrimSpace(entry.Content)
	switch {
	case content == "":
		fmt.Fprintln(out, messageContentStyle.Foreground(lipgloss.Color("240")).Render("(empty message)"))
	case entry.Error:
		fmt.Fprintln(out, messageContentStyle.Foreground(lipgloss.Color("196")).Render(wrapText(content, 80)))
	default:
		fmt.Fprintln(out, messageContentStyle.Render(wrapText(content, 80)))
	}
	fmt.Fprintln(out)
}

func wrapText(text string, width int) string {
	lines := strings.Split(text, "\n")
	var wrapped []string

	for _, line := range lines {
		if len(line) <= width {
			wrapped = append(wrapped, line)
			continue
		}

		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				if currentLine != "" {
					wrapped = append(wrapped, currentLine)
					currentLine = word
				} else {
					wrapped = append(wrapped, word)
					currentLine = ""
				}
			} else {
				if currentLine == "" {
					currentLine = word
				} else {
					currentLine += " " + word
				}
			}
		}
		if currentLine != "" {
			wrapped = append(wrapped, currentLine)
		}
	}

	return strings.Join(wrapped, "\n")
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of messages to show")
	showCmd.Flags().StringVar(&since, "since", "", "Show messages since timestamp (RFC3339)")
}
