package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/iksnae/studymind/internal"
)

func TestShowCommand(t *testing.T) {
	env := newTestEnv(t)
	updated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := env.store().SaveConversation(internal.CreateTestRecord("conv-1", "Recursion", updated)); err != nil {
		t.Fatalf("SaveConversation() error = %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		wantErr  bool
		want     []string
		dontWant []string
	}{
		{
			name:    "show without conversation ID",
			args:    []string{"show"},
			wantErr: true,
		},
		{
			name:    "unknown conversation",
			args:    []string{"show", "missing"},
			wantErr: true,
		},
		{
			name: "whole conversation",
			args: []string{"show", "conv-1"},
			want: []string{"Recursion", "Explain recursion", "calls itself", "[2/2]", "Explanation"},
		},
		{
			name:     "with limit",
			args:     []string{"show", "conv-1", "--limit", "1"},
			want:     []string{"Explain recursion", "1 more message(s)"},
			dontWant: []string{"calls itself"},
		},
		{
			name:     "with since",
			args:     []string{"show", "conv-1", "--since", "2026-03-01T12:00:00Z"},
			want:     []string{"calls itself", "[1/1]"},
			dontWant: []string{"Explain recursion"},
		},
		{
			name:    "invalid since",
			args:    []string{"show", "conv-1", "--since", "yesterday"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.run(tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("show error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, dont := range tt.dontWant {
				if strings.Contains(out, dont) {
					t.Errorf("output should not contain %q:\n%s", dont, out)
				}
			}
		})
	}
}

func TestDisplaySessionHeader(t *testing.T) {
	tests := []struct {
		name    string
		session *internal.Session
		want    string
	}{
		{
			name:    "nil session",
			session: nil,
			want:    "",
		},
		{
			name:    "session with all fields",
			session: internal.CreateTestSession("test-session"),
			want:    "Test Conversation",
		},
		{
			name:    "untitled session",
			session: internal.CreateTestSessionWithEntries("test-session", nil),
			want:    "Untitled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			displaySessionHeader(&buf, tt.session)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("header missing %q:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestDisplayMessage(t *testing.T) {
	tests := []struct {
		name  string
		entry internal.Entry
		want  string
	}{
		{
			name:  "user message",
			entry: internal.Entry{Actor: "user", Content: "Hello", Timestamp: "2026-03-01T12:00:00Z"},
			want:  "You",
		},
		{
			name:  "assistant message with task",
			entry: internal.Entry{Actor: "assistant", Content: "Key points", Task: "summarize"},
			want:  "Summary",
		},
		{
			name:  "error message",
			entry: internal.Entry{Actor: "assistant", Content: "Request failed", Error: true},
			want:  "Request failed",
		},
		{
			name:  "empty message",
			entry: internal.Entry{Actor: "assistant"},
			want:  "(empty message)",
		},
		{
			name:  "unparseable timestamp",
			entry: internal.Entry{Actor: "user", Content: "Hi", Timestamp: "not-a-time"},
			want:  "not-a-time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			displayMessage(&buf, 1, tt.entry, 1)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("message missing %q:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestFilterEntries(t *testing.T) {
	since := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []internal.Entry{
		{Content: "before", Timestamp: "2026-03-01T11:59:59Z"},
		{Content: "at", Timestamp: "2026-03-01T12:00:00Z"},
		{Content: "undated"},
		{Content: "after", Timestamp: "2026-03-01T12:00:01Z"},
	}

	if got := filterEntries(entries, nil); len(got) != len(entries) {
		t.Errorf("filterEntries(nil) kept %d entries, want %d", len(got), len(entries))
	}
	got := filterEntries(entries, &since)
	if len(got) != 2 || got[0].Content != "at" || got[1].Content != "after" {
		t.Errorf("filterEntries() = %+v, want at and after", got)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{
			name:  "short text",
			text:  "Hello world",
			width: 80,
			want:  "Hello world",
		},
		{
			name:  "long text",
			text:  "This is a very long line of text that should be wrapped",
			width: 20,
			want:  "This is a very long\nline of text that\nshould be wrapped",
		},
		{
			name:  "text with newlines",
			text:  "Line 1\nLine 2",
			width: 80,
			want:  "Line 1\nLine 2",
		},
		{
			name:  "empty text",
			text:  "",
			width: 80,
			want:  "",
		},
		{
			name:  "single long word",
			text:  "supercalifragilisticexpialidocious",
			width: 10,
			want:  "supercalifragilisticexpialidocious",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.text, tt.width); got != tt.want {
				t.Errorf("wrapText() = %q, want %q", got, tt.want)
			}
		})
	}
}
