// Package importer runs a citation dump through repair, id disambiguation,
// contributor linking and URL canonicalization.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lehigh-university-libraries/reconcile/contributor"
	"github.com/lehigh-university-libraries/reconcile/format"
	"github.com/lehigh-university-libraries/reconcile/format/bibtex"
	"github.com/lehigh-university-libraries/reconcile/hub"
)

// DefaultAuthorField is the field matched against the contributor registry.
const DefaultAuthorField = "author"

// DefaultURLFields are the fields rewritten by the URL resolver.
var DefaultURLFields = []string{"url"}

// URLResolver maps a URL to its canonical form, returning it unchanged when
// there is nothing better.
type URLResolver interface {
	Resolve(rawURL string) string
}

// Importer turns a dump into catalog entries. The zero value is usable:
// missing collaborators fall back to defaults, and a nil Resolver or
// Registry disables that step.
type Importer struct {
	Repairer    format.Repairer
	Matcher     *contributor.Matcher
	Registry    *contributor.Registry
	Resolver    URLResolver
	AuthorField string
	URLFields   []string
	Workers     int
}

// Result is the outcome of one run.
type Result struct {
	Entries []*hub.Entry

	// Malformed counts blobs rejected by the repairer.
	Malformed int

	// Empty counts blobs with no recoverable field.
	Empty int
}

// Run imports every entry of the dump read from r. Entries keep input order.
// Malformed and empty blobs are counted and skipped; other repair errors
// abort the run.
func (im *Importer) Run(ctx context.Context, r io.Reader) (*Result, error) {
	blobs, err := bibtex.SplitBlobs(r)
	if err != nil {
		return nil, err
	}

	records, errs, err := im.repairAll(ctx, blobs)
	if err != nil {
		return nil, err
	}

	result := &Result{Entries: make([]*hub.Entry, 0, len(records))}
	dedup := hub.NewDeduplicator()

	for i, record := range records {
		if err := errs[i]; err != nil {
			if !errors.Is(err, bibtex.ErrMalformedRecord) {
				return nil, fmt.Errorf("repairing record %d: %w", i, err)
			}
			slog.Warn("skipping malformed record", "index", i, "blob", bibtex.ShortID(blobs[i]), "error", err)
			result.Malformed++
			continue
		}
		if record == nil {
			slog.Debug("no fields recovered", "index", i, "blob", bibtex.ShortID(blobs[i]))
			result.Empty++
			continue
		}

		dedup.Assign(record)
		result.Entries = append(result.Entries, im.enrich(record))
	}

	slog.Info("import finished",
		"blobs", len(blobs),
		"entries", len(result.Entries),
		"malformed", result.Malformed,
		"empty", result.Empty)

	return result, nil
}

// repairAll repairs blobs concurrently. Records and errors are returned by
// input index.
func (im *Importer) repairAll(ctx context.Context, blobs []string) ([]*hub.Record, []error, error) {
	repairer := im.Repairer
	if repairer == nil {
		repairer = bibtex.NewRepairer()
	}
	workers := im.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	records := make([]*hub.Record, len(blobs))
	errs := make([]error, len(blobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, blob := range blobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i], errs[i] = repairer.Repair(blob)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return records, errs, nil
}

func (im *Importer) enrich(record *hub.Record) *hub.Entry {
	entry := &hub.Entry{Record: record}

	authorField := im.AuthorField
	if authorField == "" {
		authorField = DefaultAuthorField
	}
	if authors, ok := record.Get(authorField); ok && im.Registry != nil {
		matcher := im.Matcher
		if matcher == nil {
			matcher = contributor.NewMatcher()
		}
		entry.Contributors = matcher.MatchAll(authors, im.Registry)
	}

	if im.Resolver == nil {
		return entry
	}
	urlFields := im.URLFields
	if urlFields == nil {
		urlFields = DefaultURLFields
	}
	for _, field := range urlFields {
		raw, ok := record.Get(field)
		if !ok {
			continue
		}
		canonical := im.Resolver.Resolve(raw)
		if canonical == raw {
			continue
		}
		if entry.URLs == nil {
			entry.URLs = make(map[string]string)
		}
		// The record carries the canonical URL; URLs keeps the original.
		entry.URLs[raw] = canonical
		record.Fields[field] = canonical
	}

	return entry
}
