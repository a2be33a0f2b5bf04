package export

import (
	"sort"

	"github.com/iksnae/studymind/internal"
)

// transcript is the document written by the structured exporters: the
// conversation, what was studied in it, and the turns.
type transcript struct {
	Conversation conversationInfo `json:"conversation" yaml:"conversation"`
	Activity     activity         `json:"activity" yaml:"activity"`
	Turns        []turn           `json:"turns" yaml:"turns"`
}

type conversationInfo struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	User      string `json:"user,omitempty" yaml:"user,omitempty"`
	Source    string `json:"source" yaml:"source"`
	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// activity counts the turns. Operations maps an operation label
// ("Summary", "Quiz", ...) to how many results it produced.
type activity struct {
	Questions  int            `json:"questions" yaml:"questions"`
	Replies    int            `json:"replies" yaml:"replies"`
	Failures   int            `json:"failures" yaml:"failures"`
	Operations map[string]int `json:"operations,omitempty" yaml:"operations,omitempty"`
}

type turn struct {
	ID        int64  `json:"id,omitempty" yaml:"id,omitempty"`
	At        string `json:"at,omitempty" yaml:"at,omitempty"`
	Role      string `json:"role" yaml:"role"`
	Operation string `json:"operation,omitempty" yaml:"operation,omitempty"`
	Text      string `json:"text" yaml:"text"`
	Failed    bool   `json:"failed,omitempty" yaml:"failed,omitempty"`
}

func newTranscript(session *internal.Session) transcript {
	t := transcript{
		Conversation: conversationInfo{
			ID:        session.ID,
			Title:     session.Metadata.Title,
			User:      session.UserID,
			Source:    session.Source,
			CreatedAt: session.Metadata.CreatedAt,
			UpdatedAt: session.Metadata.UpdatedAt,
		},
		Turns: make([]turn, 0, len(session.Messages)),
	}
	for _, e := range session.Messages {
		tr := newTurn(e)
		t.Turns = append(t.Turns, tr)

		switch {
		case e.Actor == "user":
			t.Activity.Questions++
		case e.Error:
			t.Activity.Failures++
		default:
			t.Activity.Replies++
			if tr.Operation != "" {
				if t.Activity.Operations == nil {
					t.Activity.Operations = make(map[string]int)
				}
				t.Activity.Operations[tr.Operation]++
			}
		}
	}
	return t
}

func newTurn(e internal.Entry) turn {
	tr := turn{ID: e.ID, At: e.Timestamp, Role: e.Actor, Text: e.Content, Failed: e.Error}
	if e.Task != "" {
		tr.Operation = internal.Task(e.Task).Label()
	}
	return tr
}

// operationNames returns the operation labels in a stable order
func (a activity) operationNames() []string {
	names := make([]string, 0, len(a.Operations))
	for name := range a.Operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
