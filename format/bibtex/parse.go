package bibtex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/lehigh-university-libraries/reconcile/format"
	"github.com/lehigh-university-libraries/reconcile/hub"
)

// maxLineSize bounds a single line of a dump. Exported abstracts can be long.
const maxLineSize = 4 * 1024 * 1024

// SplitBlobs cuts a dump into one blob per entry. An entry starts at a line
// whose first non-space character is "@"; the sigil is removed. Text before
// the first entry is ignored and line endings are normalized to "\n".
func SplitBlobs(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var (
		blobs   []string
		current []string
		inEntry bool
	)

	flush := func() {
		if !inEntry {
			return
		}
		blob := strings.TrimRightFunc(strings.Join(current, "\n"), unicode.IsSpace)
		if blob != "" {
			blobs = append(blobs, blob)
		}
		current = current[:0]
	}

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if trimmed := strings.TrimLeftFunc(line, unicode.IsSpace); strings.HasPrefix(trimmed, "@") {
			flush()
			inEntry = true
			current = append(current, strings.TrimPrefix(trimmed, "@"))
			continue
		}
		if inEntry {
			current = append(current, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dump: %w", err)
	}
	flush()

	return blobs, nil
}

// Parse splits a dump into blobs and repairs each of them. Malformed blobs
// are logged and skipped; they never fail the whole parse.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*hub.Record, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}
	repairer := opts.Repairer
	if repairer == nil {
		repairer = NewRepairer()
	}

	blobs, err := SplitBlobs(r)
	if err != nil {
		return nil, err
	}

	records := make([]*hub.Record, 0, len(blobs))
	for i, blob := range blobs {
		record, err := repairer.Repair(blob)
		if err != nil {
			if errors.Is(err, ErrMalformedRecord) {
				slog.Warn("skipping malformed record",
					"source", opts.SourceName,
					"index", i,
					"blob", ShortID(blob),
					"error", err)
				continue
			}
			return nil, fmt.Errorf("repairing record %d: %w", i, err)
		}
		if record == nil {
			slog.Debug("no fields recovered", "source", opts.SourceName, "index", i, "blob", ShortID(blob))
			continue
		}
		records = append(records, record)
	}

	return records, nil
}
