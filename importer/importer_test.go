package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/reconcile/contributor"
	"github.com/lehigh-university-libraries/reconcile/format/bibtex"
	"github.com/lehigh-university-libraries/reconcile/hub"
	"github.com/lehigh-university-libraries/reconcile/urlresolve"
)

const jamsay = `misc{
author = {Heath, Jeffrey and Moran, Steven},
title = {Jamsay},
url = {http://dogonlanguages.org/docs/foo.pdf}
}`

const dump = "exported 2016\n" +
	"@" + jamsay + "\n" +
	"@" + jamsay + "\n" +
	"@article no brace at all\n" +
	"@misc{\njunk\n}\n" +
	"@book{\ntitle = {Other},\nurl = {http://otherhost.org/x.pdf}\n}\n"

func testRegistry(t *testing.T) *contributor.Registry {
	t.Helper()
	reg, err := contributor.NewRegistry(
		&contributor.Contributor{ID: "c1", Name: "Jeffrey Heath"},
		&contributor.Contributor{ID: "c2", Name: "Steven Moran"},
	)
	require.NoError(t, err)
	return reg
}

func testResolver() *urlresolve.Canonicalizer {
	return urlresolve.New(urlresolve.DefaultHost,
		urlresolve.Inventory{"foo.pdf": "abc123"},
		urlresolve.Index{"abc123": {Checksum: "abc123", URL: "https://archive.example/foo.pdf"}},
	)
}

func TestRun(t *testing.T) {
	im := &Importer{
		Registry: testRegistry(t),
		Resolver: testResolver(),
		Workers:  3,
	}

	result, err := im.Run(context.Background(), strings.NewReader(dump))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Malformed)
	assert.Equal(t, 1, result.Empty)
	require.Len(t, result.Entries, 3)

	id := bibtex.ContentID(jamsay)
	first, second, other := result.Entries[0], result.Entries[1], result.Entries[2]

	assert.Equal(t, id+"x1", first.Record.ID)
	assert.Equal(t, id+"x2", second.Record.ID)
	assert.Equal(t, "book", other.Record.Genre)

	assert.Equal(t, []string{"c1", "c2"}, first.Contributors)
	assert.Equal(t, []string{"c1", "c2"}, second.Contributors)
	assert.Empty(t, other.Contributors)

	assert.Equal(t, "https://archive.example/foo.pdf", first.Record.Fields["url"])
	assert.Equal(t, map[string]string{
		"http://dogonlanguages.org/docs/foo.pdf": "https://archive.example/foo.pdf",
	}, first.URLs)

	assert.Equal(t, "http://otherhost.org/x.pdf", other.Record.Fields["url"])
	assert.Nil(t, other.URLs)
}

func TestRun_ZeroValue(t *testing.T) {
	var im Importer

	result, err := im.Run(context.Background(), strings.NewReader(dump))
	require.NoError(t, err)
	require.Len(t, result.Entries, 3)

	for _, e := range result.Entries {
		assert.Empty(t, e.Contributors)
		assert.Empty(t, e.URLs)
	}
	assert.Equal(t, "http://dogonlanguages.org/docs/foo.pdf", result.Entries[0].Record.Fields["url"])
}

func TestRun_IndependentRuns(t *testing.T) {
	im := &Importer{}

	for range 2 {
		result, err := im.Run(context.Background(), strings.NewReader("@"+jamsay+"\n"))
		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		assert.True(t, strings.HasSuffix(result.Entries[0].Record.ID, "x1"))
	}
}

func TestRun_CustomFields(t *testing.T) {
	im := &Importer{
		Registry:    testRegistry(t),
		Resolver:    testResolver(),
		AuthorField: "editor",
		URLFields:   []string{"pdf"},
	}

	in := "@misc{\neditor = {Jeffrey Heath},\nauthor = {Steven Moran},\npdf = {http://dogonlanguages.org/foo.pdf},\nurl = {http://dogonlanguages.org/foo.pdf}\n}\n"
	result, err := im.Run(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)

	e := result.Entries[0]
	assert.Equal(t, []string{"c1"}, e.Contributors)
	assert.Equal(t, "https://archive.example/foo.pdf", e.Record.Fields["pdf"])
	assert.Equal(t, "http://dogonlanguages.org/foo.pdf", e.Record.Fields["url"])
}

func TestRun_URLRewriteInPlace(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantURL  string
		wantURLs map[string]string
	}{
		{
			name:     "archived document",
			url:      "http://dogonlanguages.org/docs/foo.pdf",
			wantURL:  "https://archive.example/foo.pdf",
			wantURLs: map[string]string{"http://dogonlanguages.org/docs/foo.pdf": "https://archive.example/foo.pdf"},
		},
		{
			name:    "unknown document",
			url:     "http://dogonlanguages.org/docs/missing.pdf",
			wantURL: "http://dogonlanguages.org/docs/missing.pdf",
		},
		{
			name:    "foreign host",
			url:     "http://otherhost.org/foo.pdf",
			wantURL: "http://otherhost.org/foo.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := "misc{\ntitle = {T},\nurl = {" + tt.url + "}\n}"
			im := &Importer{Resolver: testResolver()}

			result, err := im.Run(context.Background(), strings.NewReader("@"+blob+"\n"))
			require.NoError(t, err)
			require.Len(t, result.Entries, 1)

			e := result.Entries[0]
			assert.Equal(t, tt.wantURL, e.Record.Fields["url"])
			assert.Equal(t, "T", e.Record.Fields["title"])
			assert.Equal(t, tt.wantURLs, e.URLs)
			assert.Equal(t, bibtex.ContentID(blob)+"x1", e.Record.ID)
		})
	}
}

type failingRepairer struct{}

var errBroken = errors.New("broken")

func (failingRepairer) Repair(string) (*hub.Record, error) {
	return nil, errBroken
}

func TestRun_RepairErrorAborts(t *testing.T) {
	im := &Importer{Repairer: failingRepairer{}}

	_, err := im.Run(context.Background(), strings.NewReader("@"+jamsay+"\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errBroken)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Importer{}).Run(ctx, strings.NewReader(dump))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_EmptyInput(t *testing.T) {
	result, err := (&Importer{}).Run(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.Zero(t, result.Malformed)
	assert.Zero(t, result.Empty)
}
