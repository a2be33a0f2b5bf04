package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/studymind/internal"
)

// JSONLExporter writes one turn per line. Each line names its conversation
// so the files of several conversations can be concatenated.
type JSONLExporter struct{}

type turnLine struct {
	Conversation string `json:"conversation"`
	turn
}

func (e *JSONLExporter) Export(session *internal.Session, w io.Writer) error {
	if session == nil {
		return &internal.ExportError{Format: "jsonl", Err: errNilSession}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, entry := range session.Messages {
		if err := enc.Encode(turnLine{Conversation: session.ID, turn: newTurn(entry)}); err != nil {
			return &internal.ExportError{Format: "jsonl", Err: err}
		}
	}
	return nil
}

func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
