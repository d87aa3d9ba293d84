package bibtex

import (
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/reconcile/format"
	"github.com/lehigh-university-libraries/reconcile/hub"
)

// Serialize writes entries as BibTeX, using the disambiguated record id as
// citation key. Field values are written as recovered, without re-escaping.
func (f *Format) Serialize(w io.Writer, entries []*hub.Entry, opts *format.SerializeOptions) error {
	// opts reserved for future use (e.g., field ordering)
	_ = opts

	for i, entry := range entries {
		if entry == nil || entry.Record == nil {
			continue
		}
		if _, err := io.WriteString(w, recordToBibtex(entry.Record)); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
		if i < len(entries)-1 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}

	return nil
}

// recordToBibtex renders one record with its fields in sorted order.
func recordToBibtex(r *hub.Record) string {
	var sb strings.Builder

	genre := r.Genre
	if genre == "" {
		genre = "misc"
	}
	fmt.Fprintf(&sb, "@%s{%s,\n", genre, r.ID)

	for _, key := range r.Keys() {
		fmt.Fprintf(&sb, "  %s,\n", FormatField(key, r.Fields[key]))
	}

	sb.WriteString("}\n")
	return sb.String()
}
