package ndjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protojson"

	"github.com/lehigh-university-libraries/reconcile/format"
	"github.com/lehigh-university-libraries/reconcile/hub"
)

// Serialize writes each entry as a protojson-encoded object followed by a
// newline. With opts.Pretty the objects are indented and separated by a
// blank line instead.
func (f *Format) Serialize(w io.Writer, entries []*hub.Entry, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}

	for i, entry := range entries {
		s, err := entry.ToStruct()
		if err != nil {
			return fmt.Errorf("converting entry %d: %w", i, err)
		}

		data, err := protojson.Marshal(s)
		if err != nil {
			return fmt.Errorf("encoding entry %d: %w", i, err)
		}

		// protojson output is not byte-stable; normalize it.
		var buf bytes.Buffer
		if opts.Pretty {
			err = json.Indent(&buf, data, "", "  ")
		} else {
			err = json.Compact(&buf, data)
		}
		if err != nil {
			return fmt.Errorf("formatting entry %d: %w", i, err)
		}

		buf.WriteByte('\n')
		if opts.Pretty && i < len(entries)-1 {
			buf.WriteByte('\n')
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return nil
}
