package bibtex

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/lehigh-university-libraries/reconcile/format"
	"github.com/lehigh-university-libraries/reconcile/hub"
)

// ErrMalformedRecord indicates a blob whose brace structure could not be
// recovered. Only the offending blob is lost.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError describes why a blob was rejected.
type MalformedRecordError struct {
	Reason string
	Blob   string
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %s: %s", ShortID(e.Blob), e.Reason)
}

// Is implements errors.Is support.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// DefaultNoiseMarkers are the source-attribution phrases the upstream export
// splices into citation bodies. Each is removed when followed by a newline.
var DefaultNoiseMarkers = []string{
	"BibTeX,",
	"Indiana University,",
}

// fragmentBoundary separates field fragments in an exported body. Values
// containing this exact sequence are split apart.
const fragmentBoundary = "},\n"

var fieldPattern = regexp.MustCompile(`(?s)^([A-Za-z]+)\s*=\s*\{(.*)$`)

// Repairer scrapes key/value fields out of the malformed citation blobs
// produced by the upstream export. It is not a BibTeX grammar: fragments it
// cannot read are dropped and the rest of the record is kept.
type Repairer struct {
	NoiseMarkers []string
}

var _ format.Repairer = (*Repairer)(nil)

// NewRepairer creates a Repairer using DefaultNoiseMarkers.
func NewRepairer() *Repairer {
	return &Repairer{NoiseMarkers: DefaultNoiseMarkers}
}

// Repair recovers a record from one blob. The blob is the entry text with the
// leading "@" removed, e.g. "article{title = {...}}".
//
// It returns a *MalformedRecordError when the blob has no opening brace or
// does not end with a closing one, and (nil, nil) when no field survived.
func (rp *Repairer) Repair(raw string) (*hub.Record, error) {
	text := raw
	for _, marker := range rp.NoiseMarkers {
		if marker == "" {
			continue
		}
		text = strings.ReplaceAll(text, marker+"\n", "")
	}

	genre, rem, ok := strings.Cut(text, "{")
	if !ok {
		return nil, &MalformedRecordError{Reason: "no opening brace", Blob: raw}
	}

	rem = strings.TrimRightFunc(rem, unicode.IsSpace)
	if !strings.HasSuffix(rem, "}") {
		return nil, &MalformedRecordError{Reason: "body does not end with a closing brace", Blob: raw}
	}
	rem = strings.TrimSpace(strings.TrimSuffix(rem, "}"))

	fields := make(map[string]string)
	for _, fragment := range strings.Split(rem, fragmentBoundary) {
		key, value, ok := parseFragment(fragment)
		if !ok {
			continue
		}
		fields[key] = value
	}

	if len(fields) == 0 {
		return nil, nil
	}

	return hub.NewRecord(normalizeGenre(genre), ContentID(raw), fields), nil
}

// parseFragment reads one "key = {value" fragment.
func parseFragment(fragment string) (string, string, bool) {
	fragment = strings.TrimSpace(fragment)
	fragment = strings.TrimSuffix(fragment, "}")

	m := fieldPattern.FindStringSubmatch(fragment)
	if m == nil {
		return "", "", false
	}

	value := strings.TrimSpace(m[2])
	if value == "" {
		return "", "", false
	}
	return strings.ToLower(m[1]), value, true
}

func normalizeGenre(genre string) string {
	return strings.ToLower(strings.TrimSpace(genre))
}

// ContentID returns the hex MD5 of the blob with its "@" sigil restored.
// Identical blobs always share an id.
func ContentID(raw string) string {
	sum := md5.Sum([]byte("@" + raw))
	return hex.EncodeToString(sum[:])
}

// ShortID returns the first eight hex digits of ContentID, for log output.
func ShortID(raw string) string {
	return ContentID(raw)[:8]
}

// FormatField renders a single field the way the export writes it.
func FormatField(key, value string) string {
	return key + " = {" + value + "}"
}
