package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iksnae/studymind/internal"
)

func TestJSONExporter_Export(t *testing.T) {
	tests := []struct {
		name          string
		session       *internal.Session
		wantTurns     int
		wantQuestions int
		wantOps       map[string]int
		wantErr       bool
	}{
		{
			name:          "basic session",
			session:       internal.CreateTestSession("test1"),
			wantTurns:     2,
			wantQuestions: 1,
			wantOps:       map[string]int{"Explanation": 1},
		},
		{
			name:    "empty session",
			session: internal.CreateTestSessionWithEntries("test2", []internal.Entry{}),
		},
		{
			name: "quiz with a failed retry",
			session: &internal.Session{
				ID:     "test3",
				UserID: "u1",
				Source: "studymind",
				Messages: []internal.Entry{
					{ID: 10, Actor: "assistant", Content: "Q1. What is a stack?", Timestamp: "2026-01-01T00:00:00Z", Task: "quiz"},
					{ID: 11, Actor: "assistant", Content: "🔌 Error: boom", Task: "quiz", Error: true},
				},
				Metadata: internal.Metadata{Title: "Stacks <LIFO>", MessageCount: 2},
			},
			wantTurns: 2,
			wantOps:   map[string]int{"Quiz": 1},
		},
		{
			name:    "nil session",
			session: nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &JSONExporter{}

			err := exporter.Export(tt.session, &buf)
			if (err != nil) != tt.wantErr {
				t.Errorf("JSONExporter.Export() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			output := buf.String()
			var got transcript
			if err := json.Unmarshal([]byte(output), &got); err != nil {
				t.Fatalf("Output is not valid JSON: %v\nOutput: %s", err, output)
			}

			if got.Conversation.ID != tt.session.ID {
				t.Errorf("conversation.id = %q, want %q", got.Conversation.ID, tt.session.ID)
			}
			if len(got.Turns) != tt.wantTurns {
				t.Errorf("decoded %d turns, want %d", len(got.Turns), tt.wantTurns)
			}
			if got.Activity.Questions != tt.wantQuestions {
				t.Errorf("activity.questions = %d, want %d", got.Activity.Questions, tt.wantQuestions)
			}
			for op, n := range tt.wantOps {
				if got.Activity.Operations[op] != n {
					t.Errorf("activity.operations[%q] = %d, want %d", op, got.Activity.Operations[op], n)
				}
			}
			if !strings.Contains(output, "\n  ") {
				t.Errorf("Output should be pretty-printed with indentation")
			}
		})
	}
}

func TestJSONExporter_Export_Fields(t *testing.T) {
	session := internal.CreateTestSessionWithEntries("conv-9", []internal.Entry{
		{ID: 42, Actor: "assistant", Content: "Front: a < b", Task: "flashcards", Error: true},
	})
	session.Metadata.Title = "Ordering"

	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	output := buf.String()
	for _, want := range []string{
		`"conversation": {`,
		`"title": "Ordering"`,
		`"failures": 1`,
		`"id": 42`,
		`"operation": "Flashcards"`,
		`"failed": true`,
		`"text": "Front: a < b"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output should contain %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, `"messages"`) {
		t.Errorf("Output should not carry the raw messages array:\n%s", output)
	}
}

func TestJSONExporter_Extension(t *testing.T) {
	exporter := &JSONExporter{}
	if got := exporter.Extension(); got != "json" {
		t.Errorf("JSONExporter.Extension() = %v, want json", got)
	}
}
