package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/studymind/internal"
)

// Exporter writes one archived conversation in a file format
type Exporter interface {
	Export(session *internal.Session, w io.Writer) error
	Extension() string
}

type format struct {
	name    string
	aliases []string
	build   func() Exporter
}

// formats in the order they are listed to the user; the first is the default
var formats = []format{
	{name: "jsonl", build: func() Exporter { return &JSONLExporter{} }},
	{name: "md", aliases: []string{"markdown"}, build: func() Exporter { return &MarkdownExporter{} }},
	{name: "yaml", aliases: []string{"yml"}, build: func() Exporter { return &YAMLExporter{} }},
	{name: "json", build: func() Exporter { return &JSONExporter{} }},
}

var errNilSession = errors.New("nil session")

// Formats returns the canonical format names
func Formats() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.name
	}
	return names
}

// NewExporter returns the exporter for a format name or alias, ignoring case
func NewExporter(name string) (Exporter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range formats {
		if f.name == name {
			return f.build(), nil
		}
		for _, a := range f.aliases {
			if a == name {
				return f.build(), nil
			}
		}
	}
	return nil, fmt.Errorf("unsupported format: %q (supported: %s)", name, strings.Join(Formats(), ", "))
}
