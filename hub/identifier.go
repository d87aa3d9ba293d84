package hub

import "strconv"

// Deduplicator disambiguates record ids within one import run. Every id is
// suffixed with "x" and the 1-based number of times it has been seen so
// far, so the first occurrence of "abc" becomes "abcx1".
//
// A Deduplicator is not safe for concurrent use. Independent runs must use
// independent instances.
type Deduplicator struct {
	counts map[string]int
}

// NewDeduplicator creates a Deduplicator with no ids seen.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{
		counts: make(map[string]int),
	}
}

// Next records one more occurrence of id and returns its disambiguated form.
func (d *Deduplicator) Next(id string) string {
	d.counts[id]++
	return id + "x" + strconv.Itoa(d.counts[id])
}

// Assign rewrites the id of a single record.
func (d *Deduplicator) Assign(r *Record) {
	r.ID = d.Next(r.ID)
}

// Apply rewrites record ids in slice order and returns the same slice.
// Nil records are skipped.
func (d *Deduplicator) Apply(records []*Record) []*Record {
	for _, r := range records {
		if r == nil {
			continue
		}
		d.Assign(r)
	}
	return records
}

// Seen returns how many times id has been assigned.
func (d *Deduplicator) Seen(id string) int {
	return d.counts[id]
}
