// Package ndjson provides a format plugin writing one JSON object per line.
package ndjson

import (
	"bytes"

	"github.com/lehigh-university-libraries/reconcile/format"
)

// Format implements newline-delimited JSON output.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "ndjson"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Newline-delimited JSON (one catalog entry per line)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"ndjson", "jsonl"}
}

// CanParse returns true if the input looks like an entry stream.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '{' {
		return false
	}

	line, _, _ := bytes.Cut(peek, []byte("\n"))
	return bytes.Contains(line, []byte(`"genre"`)) && bytes.Contains(line, []byte(`"fields"`))
}

func init() {
	format.Register(&Format{})
}
