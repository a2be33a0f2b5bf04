package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/iksnae/studymind/internal"
)

// YAMLExporter writes the study transcript as YAML. Multi-line replies come
// out as literal blocks so quizzes and flashcards stay readable.
type YAMLExporter struct{}

func (e *YAMLExporter) Export(session *internal.Session, w io.Writer) error {
	if session == nil {
		return &internal.ExportError{Format: "yaml", Err: errNilSession}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newTranscript(session)); err != nil {
		return &internal.ExportError{Format: "yaml", Err: err}
	}
	return enc.Close()
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}
