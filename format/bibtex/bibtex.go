// Package bibtex reads the BibTeX-like citation dumps of the legacy site
// export and writes repaired records back in BibTeX form.
package bibtex

import (
	"bufio"
	"bytes"
	"regexp"

	"github.com/lehigh-university-libraries/reconcile/format"
)

// entryStart matches the first line of a dump entry, e.g. "@misc{" or
// "  @InCollection {".
var entryStart = regexp.MustCompile(`^\s*@\w+\s*\{`)

// Format is the citation dump plugin. Parse repairs blobs with
// ParseOptions.Repairer, or NewRepairer when none is set.
type Format struct{}

var (
	_ format.Format     = (*Format)(nil)
	_ format.Parser     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

func (f *Format) Name() string { return "bibtex" }

func (f *Format) Description() string {
	return "BibTeX citation dump (repaired)"
}

func (f *Format) Extensions() []string {
	return []string{"bib", "bibtex"}
}

// CanParse reports whether peek holds an entry line or one of the export's
// noise marker lines. Any entry type counts, since the dump uses custom
// genres next to the standard ones.
func (f *Format) CanParse(peek []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(peek))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if entryStart.Match(line) || isNoiseLine(line) {
			return true
		}
	}
	return false
}

func isNoiseLine(line []byte) bool {
	line = bytes.TrimSpace(line)
	for _, marker := range DefaultNoiseMarkers {
		if string(line) == marker {
			return true
		}
	}
	return false
}

func init() {
	format.Register(&Format{})
}
