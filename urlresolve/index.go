package urlresolve

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// CanonicalRecord is one file of the remote archive.
type CanonicalRecord struct {
	ID       string `json:"id,omitempty"`
	Filename string `json:"filename,omitempty"`
	Checksum string `json:"checksum"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type,omitempty"`
}

// Index maps checksums to archive records.
type Index map[string]CanonicalRecord

// xmlItem is an <item> of the archive metadata export. Element names from
// both the current and the older export are accepted.
type xmlItem struct {
	ID       string `xml:"id,attr"`
	Filename string `xml:"filename"`
	Checksum string `xml:"checksum"`
	MD5      string `xml:"md5"`
	FileURL  string `xml:"fileUrl"`
	FullURL  string `xml:"fullImageUrl"`
	URL      string `xml:"url"`
	MimeType string `xml:"mimetype"`
}

func (it *xmlItem) record() CanonicalRecord {
	return CanonicalRecord{
		ID:       strings.TrimSpace(it.ID),
		Filename: strings.TrimSpace(it.Filename),
		Checksum: strings.ToLower(firstNonEmpty(it.Checksum, it.MD5)),
		URL:      firstNonEmpty(it.FileURL, it.FullURL, it.URL),
		MimeType: strings.TrimSpace(it.MimeType),
	}
}

// LoadIndex reads an archive metadata XML file.
func LoadIndex(path string) (Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive index: %w", err)
	}
	defer f.Close()

	return ParseIndex(f)
}

// ParseIndex streams an archive metadata document and indexes every <item>
// element, whatever its namespace or nesting depth, by checksum. Items
// without a checksum or URL are skipped. When checksums repeat, the first
// item wins.
func ParseIndex(r io.Reader) (Index, error) {
	idx := make(Index)
	dec := xml.NewDecoder(r)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing archive index: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "item" {
			continue
		}

		var item xmlItem
		if err := dec.DecodeElement(&item, &start); err != nil {
			return nil, fmt.Errorf("parsing archive index item: %w", err)
		}

		rec := item.record()
		if rec.Checksum == "" || rec.URL == "" {
			continue
		}
		if _, dup := idx[rec.Checksum]; dup {
			continue
		}
		idx[rec.Checksum] = rec
	}

	return idx, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
