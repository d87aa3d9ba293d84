package urlresolve

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DefaultHost is the legacy project site whose document links are resolved.
const DefaultHost = "dogonlanguages.org"

// DefaultSubdirs are the archive directories scanned under the docs root:
// files already archived, and files kept locally only.
var DefaultSubdirs = []string{"", "not_on_edmond"}

// Canonicalizer resolves legacy document URLs to canonical archive URLs.
// It is immutable after construction and safe for concurrent use.
type Canonicalizer struct {
	host      string
	inventory Inventory
	index     Index
}

// New creates a Canonicalizer from an already built inventory and index.
func New(host string, inv Inventory, idx Index) *Canonicalizer {
	if inv == nil {
		inv = Inventory{}
	}
	if idx == nil {
		idx = Index{}
	}
	return &Canonicalizer{
		host:      strings.ToLower(host),
		inventory: inv,
		index:     idx,
	}
}

// Options configures Load.
type Options struct {
	// Host is the site whose links are resolved (DefaultHost when empty)
	Host string

	// DocsDir is the root of the local document archive
	DocsDir string

	// Subdirs are scanned under DocsDir (DefaultSubdirs when nil)
	Subdirs []string

	// IndexFile is the archive metadata XML. Relative paths are taken
	// relative to the parent of DocsDir.
	IndexFile string

	// Workers bounds concurrent checksum computation
	Workers int
}

// Load builds the inventory and the archive index. When DocsDir does not
// exist the Canonicalizer passes every URL through unchanged and the index
// file is not read.
func Load(ctx context.Context, opts Options) (*Canonicalizer, error) {
	host := opts.Host
	if host == "" {
		host = DefaultHost
	}
	subdirs := opts.Subdirs
	if subdirs == nil {
		subdirs = DefaultSubdirs
	}

	if opts.DocsDir == "" {
		return New(host, nil, nil), nil
	}
	if _, err := os.Stat(opts.DocsDir); os.IsNotExist(err) {
		slog.Info("document archive not found, URLs will pass through", "docs_dir", opts.DocsDir)
		return New(host, nil, nil), nil
	}

	inv, err := BuildInventory(ctx, opts.DocsDir, subdirs, opts.Workers)
	if err != nil {
		return nil, err
	}

	var idx Index
	if opts.IndexFile != "" {
		path := opts.IndexFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(filepath.Clean(opts.DocsDir)), path)
		}
		idx, err = LoadIndex(path)
		if err != nil {
			return nil, fmt.Errorf("loading archive index: %w", err)
		}
	}

	c := New(host, inv, idx)
	files, records := c.Stats()
	slog.Debug("url resolver ready", "host", host, "files", files, "archive_records", records)
	return c, nil
}

// Resolve returns the canonical archive URL for rawURL, or rawURL itself
// when the host differs, the URL does not parse, the file is not in the
// local inventory, or its checksum is not in the archive.
func (c *Canonicalizer) Resolve(rawURL string) string {
	if rec, ok := c.Lookup(rawURL); ok {
		return rec.URL
	}
	return rawURL
}

// Lookup returns the archive record rawURL resolves to.
func (c *Canonicalizer) Lookup(rawURL string) (CanonicalRecord, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || strings.ToLower(u.Hostname()) != c.host {
		return CanonicalRecord{}, false
	}

	name := lastSegment(u.Path)
	if name == "" {
		return CanonicalRecord{}, false
	}

	checksum, ok := c.inventory[name]
	if !ok {
		return CanonicalRecord{}, false
	}
	rec, ok := c.index[checksum]
	return rec, ok
}

// Stats returns the number of inventoried files and archive records.
func (c *Canonicalizer) Stats() (files, records int) {
	return len(c.inventory), len(c.index)
}

func lastSegment(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}
