package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/iksnae/studymind/internal"
)

// Markdown renders backend replies for the terminal. A disabled or broken
// renderer falls back to the raw text.
type Markdown struct {
	renderer *glamour.TermRenderer
}

// NewMarkdown creates a renderer for the given theme and wrap width.
// enabled=false returns a pass-through renderer.
func NewMarkdown(enabled, dark bool, width int) *Markdown {
	if !enabled {
		return &Markdown{}
	}
	style := "light"
	if dark {
		style = "dark"
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		internal.LogWarn("Markdown rendering disabled: %v", err)
		return &Markdown{}
	}
	return &Markdown{renderer: r}
}

// Enabled reports whether text is rendered as markdown
func (md *Markdown) Enabled() bool {
	return md != nil && md.renderer != nil
}

// Render returns text rendered as markdown, trimmed of the surrounding blank lines
func (md *Markdown) Render(text string) string {
	if !md.Enabled() {
		return text
	}
	out, err := md.renderer.Render(text)
	if err != nil {
		internal.LogDebug("Markdown render failed: %v", err)
		return text
	}
	return strings.Trim(out, "\n")
}
