package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/studymind/internal"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input   string
		isCmd   bool
		want    Command
		wantErr bool
	}{
		{input: "hello there", isCmd: false},
		{input: "/summarize", isCmd: true, want: Command{Kind: CmdOperation, Task: internal.TaskSummarize}},
		{input: "  /Flashcards ", isCmd: true, want: Command{Kind: CmdOperation, Task: internal.TaskFlashcards}},
		{input: "/tone", isCmd: true, want: Command{Kind: CmdTone}},
		{input: "/tone socratic", isCmd: true, want: Command{Kind: CmdTone, Arg: "socratic"}},
		{input: "/tone a b", isCmd: true, wantErr: true},
		{input: "/theme", isCmd: true, want: Command{Kind: CmdTheme}},
		{input: "/sidebar", isCmd: true, want: Command{Kind: CmdSidebar}},
		{input: "/new", isCmd: true, want: Command{Kind: CmdNew}},
		{input: "/?", isCmd: true, want: Command{Kind: CmdHelp}},
		{input: "/open 3", isCmd: true, want: Command{Kind: CmdOpen, N: 3}},
		{input: "/open 0", isCmd: true, wantErr: true},
		{input: "/open", isCmd: true, wantErr: true},
		{input: "/file a.pdf", isCmd: true, want: Command{Kind: CmdFile, Arg: "a.pdf"}},
		{input: "/upload a.pdf key points please", isCmd: true, want: Command{Kind: CmdFile, Arg: "a.pdf", Rest: "key points please"}},
		{input: "/file", isCmd: true, wantErr: true},
		{input: "/", isCmd: true, wantErr: true},
		{input: "/dance", isCmd: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, isCmd, err := ParseCommand(tt.input)
			assert.Equal(t, tt.isCmd, isCmd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHelpText(t *testing.T) {
	text := HelpText()
	for _, want := range []string{"/summarize", "/explain", "/tone", "/file", "quiz-generator", "grade", "history"} {
		assert.Contains(t, text, want)
	}
	assert.NotContains(t, text, "  chat ")
}

func TestMarkdown(t *testing.T) {
	plain := NewMarkdown(false, false, 80)
	assert.False(t, plain.Enabled())
	assert.Equal(t, "**bold**", plain.Render("**bold**"))

	md := NewMarkdown(true, true, 10)
	require.True(t, md.Enabled())
	out := md.Render("# Cells\n\nThe **nucleus** holds DNA.")
	assert.Contains(t, out, "nucleus")
	assert.NotContains(t, out, "**")

	var nilMD *Markdown
	assert.Equal(t, "x", nilMD.Render("x"))
}

func TestRenderSidebar(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	th := NewTheme(false)

	empty := renderSidebar(th, nil, "", 20, now)
	assert.Contains(t, empty, "No saved conversations")

	convs := []internal.Conversation{
		{ID: "a", Title: "Photosynthesis", UpdatedAt: now.Add(-3 * time.Minute)},
		{ID: "b", UpdatedAt: now.Add(-2 * time.Hour)},
	}
	out := renderSidebar(th, convs, "a", 20, now)
	assert.Contains(t, out, "1. Photosynthesis")
	assert.Contains(t, out, "2. Untitled")
	assert.Contains(t, out, "3 minutes ago")
	assert.Contains(t, out, "2 hours ago")

	assert.Equal(t, "no saved conversations", sidebarSummary(nil))
	assert.Equal(t, "1 saved conversation", sidebarSummary(convs[:1]))
	assert.Equal(t, "2 saved conversations", sidebarSummary(convs))
}

func TestNewTheme(t *testing.T) {
	assert.True(t, NewTheme(true).Dark)
	assert.False(t, NewTheme(false).Dark)
}
