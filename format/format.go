// Package format defines the interface for citation format plugins.
package format

import (
	"io"

	"github.com/lehigh-university-libraries/reconcile/hub"
)

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format identifier (e.g., "bibtex", "ndjson")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string

	// CanParse returns true if this format can parse the given input
	CanParse(peek []byte) bool
}

// Repairer recovers one record from a raw, possibly malformed citation blob.
//
// A nil record with a nil error means the blob held nothing worth keeping.
// Structural failures are returned as errors and only affect that blob.
type Repairer interface {
	Repair(raw string) (*hub.Record, error)
}

// Parser is a format that can parse input into records.
type Parser interface {
	Format

	// Parse reads input and returns repaired records in input order.
	// Records are returned with their content-hash ids; disambiguation is
	// left to the caller.
	Parse(r io.Reader, opts *ParseOptions) ([]*hub.Record, error)
}

// Serializer is a format that can write entries to output.
type Serializer interface {
	Format

	// Serialize writes entries to the output.
	Serialize(w io.Writer, entries []*hub.Entry, opts *SerializeOptions) error
}

// ParseOptions contains options for parsing.
type ParseOptions struct {
	// Repairer overrides the format's default blob repairer
	Repairer Repairer

	// SourceName is an identifier for the source (for log messages)
	SourceName string
}

// SerializeOptions contains options for serialization.
type SerializeOptions struct {
	// Pretty enables pretty-printing (for JSON formats)
	Pretty bool
}

// NewParseOptions creates ParseOptions with defaults.
func NewParseOptions() *ParseOptions {
	return &ParseOptions{}
}

// NewSerializeOptions creates SerializeOptions with defaults.
func NewSerializeOptions() *SerializeOptions {
	return &SerializeOptions{}
}
