package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/studymind/internal"
)

// JSONExporter writes one pretty-printed study transcript per conversation
type JSONExporter struct{}

func (e *JSONExporter) Export(session *internal.Session, w io.Writer) error {
	if session == nil {
		return &internal.ExportError{Format: "json", Err: errNilSession}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(newTranscript(session))
}

func (e *JSONExporter) Extension() string {
	return "json"
}
