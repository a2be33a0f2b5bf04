package export

import (
	"reflect"
	"testing"

	"github.com/iksnae/studymind/internal"
)

func TestNewTranscript(t *testing.T) {
	session := internal.CreateTestSessionWithEntries("conv-7", []internal.Entry{
		{ID: 1, Actor: "user", Content: "Cells divide by mitosis."},
		{ID: 2, Actor: "assistant", Content: "Mitosis makes two identical cells.", Task: "summarize"},
		{ID: 3, Actor: "assistant", Content: "Q1. How many cells?", Task: "quiz"},
		{ID: 4, Actor: "assistant", Content: "🔌 Error: timeout", Task: "quiz", Error: true},
		{ID: 5, Actor: "user", Content: "📎 cells.pdf"},
		{ID: 6, Actor: "assistant", Content: "A shorter summary.", Task: "summarize"},
		{ID: 7, Actor: "assistant", Content: "It depends on the phase."},
	})
	session.UserID = "student-3"
	session.Metadata.Title = "Cell division"

	got := newTranscript(session)

	if got.Conversation.ID != "conv-7" || got.Conversation.User != "student-3" || got.Conversation.Title != "Cell division" {
		t.Errorf("Conversation = %+v", got.Conversation)
	}

	wantActivity := activity{
		Questions:  2,
		Replies:    4,
		Failures:   1,
		Operations: map[string]int{"Summary": 2, "Quiz": 1},
	}
	if !reflect.DeepEqual(got.Activity, wantActivity) {
		t.Errorf("Activity = %+v, want %+v", got.Activity, wantActivity)
	}
	if names := got.Activity.operationNames(); !reflect.DeepEqual(names, []string{"Quiz", "Summary"}) {
		t.Errorf("operationNames() = %v", names)
	}

	if len(got.Turns) != 7 {
		t.Fatalf("len(Turns) = %d, want 7", len(got.Turns))
	}
	tests := []struct {
		index     int
		id        int64
		role      string
		operation string
		failed    bool
	}{
		{0, 1, "user", "", false},
		{1, 2, "assistant", "Summary", false},
		{3, 4, "assistant", "Quiz", true},
		{6, 7, "assistant", "", false},
	}
	for _, tt := range tests {
		turn := got.Turns[tt.index]
		if turn.ID != tt.id || turn.Role != tt.role || turn.Operation != tt.operation || turn.Failed != tt.failed {
			t.Errorf("Turns[%d] = %+v, want id=%d role=%s operation=%q failed=%v",
				tt.index, turn, tt.id, tt.role, tt.operation, tt.failed)
		}
	}
}

func TestNewTranscript_NoOperations(t *testing.T) {
	got := newTranscript(internal.CreateTestSessionWithEntries("empty", []internal.Entry{}))
	if got.Activity.Operations != nil {
		t.Errorf("Operations = %v, want nil", got.Activity.Operations)
	}
	if got.Turns == nil || len(got.Turns) != 0 {
		t.Errorf("Turns = %#v, want empty slice", got.Turns)
	}
}

func TestNewTurn_UnknownTask(t *testing.T) {
	turn := newTurn(internal.Entry{Actor: "assistant", Content: "x", Task: "mindmap"})
	if turn.Operation != "mindmap" {
		t.Errorf("Operation = %q, want the raw task name", turn.Operation)
	}
}
