package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/studymind/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export exports a transcript to Markdown format
func (e *MarkdownExporter) Export(session *internal.Session, w io.Writer) error {
	if session == nil {
		return &internal.ExportError{Format: "md", Err: errNilSession}
	}

	title := session.Metadata.Title
	if title == "" {
		title = "Session " + session.ID
	}
	_, _ = fmt.Fprintf(w, "# %s\n\n", title)

	_, _ = fmt.Fprintf(w, "**Session:** %s  \n", session.ID)
	if session.UserID != "" {
		_, _ = fmt.Fprintf(w, "**User:** %s  \n", session.UserID)
	}
	_, _ = fmt.Fprintf(w, "**Source:** %s  \n", session.Source)
	if session.Metadata.CreatedAt != "" {
		_, _ = fmt.Fprintf(w, "**Started:** %s  \n", session.Metadata.CreatedAt)
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d  \n", len(session.Messages))
	_, _ = fmt.Fprintf(w, "**Activity:** %s\n\n", describeActivity(newTranscript(session).Activity))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Messages\n\n")

	for i, msg := range session.Messages {
		t := newTurn(msg)
		label := t.Role
		if t.Operation != "" {
			label += " · " + t.Operation
		}
		if t.Failed {
			label += " · failed"
		}

		timestamp := ""
		if msg.Timestamp != "" {
			timestamp = fmt.Sprintf(" (%s)", msg.Timestamp)
		}

		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", label, timestamp, escapeMarkdown(msg.Content))

		if i < len(session.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// describeActivity renders "2 questions, 1 failed, Quiz ×1, Summary ×2"
func describeActivity(a activity) string {
	parts := []string{plural(a.Questions, "question")}
	if a.Failures > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", a.Failures))
	}
	for _, name := range a.operationNames() {
		parts = append(parts, fmt.Sprintf("%s ×%d", name, a.Operations[name]))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// escapeMarkdown escapes emphasis markers outside fenced code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
