// Package hub provides the canonical citation record shared by every format
// plugin, and helpers for working with it.
package hub

import (
	"maps"
	"slices"

	"google.golang.org/protobuf/types/known/structpb"
)

// Record is a repaired citation: an entry genre, an identifier and a map of
// lower-cased field names to trimmed, non-empty values.
type Record struct {
	Genre  string
	ID     string
	Fields map[string]string
}

// NewRecord creates a Record. It returns nil when fields is empty, since a
// record without fields is never worth keeping.
func NewRecord(genre, id string, fields map[string]string) *Record {
	if len(fields) == 0 {
		return nil
	}
	return &Record{
		Genre:  genre,
		ID:     id,
		Fields: fields,
	}
}

// Get returns the value of a field and whether it is present.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.Fields[key]
	return v, ok
}

// Keys returns the field names in sorted order.
func (r *Record) Keys() []string {
	return slices.Sorted(maps.Keys(r.Fields))
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	return &Record{
		Genre:  r.Genre,
		ID:     r.ID,
		Fields: maps.Clone(r.Fields),
	}
}

// ToStruct converts the record into a protobuf Struct with "genre", "id"
// and "fields" members.
func (r *Record) ToStruct() (*structpb.Struct, error) {
	fields := make(map[string]any, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return structpb.NewStruct(map[string]any{
		"genre":  r.Genre,
		"id":     r.ID,
		"fields": fields,
	})
}

// Entry is a record ready for the catalog, together with the contributor
// ids linked from its author field and the URL rewrites applied to it.
type Entry struct {
	Record *Record

	// Contributors holds matched contributor ids in match order.
	// The same id may appear more than once.
	Contributors []string

	// URLs maps each original URL that was rewritten to its canonical form.
	URLs map[string]string
}

// ToStruct converts the entry into a protobuf Struct. The record members are
// extended with "contributors" and "urls".
func (e *Entry) ToStruct() (*structpb.Struct, error) {
	s, err := e.Record.ToStruct()
	if err != nil {
		return nil, err
	}

	contributors := make([]any, 0, len(e.Contributors))
	for _, c := range e.Contributors {
		contributors = append(contributors, c)
	}
	list, err := structpb.NewList(contributors)
	if err != nil {
		return nil, err
	}
	s.Fields["contributors"] = structpb.NewListValue(list)

	urls := make(map[string]any, len(e.URLs))
	for k, v := range e.URLs {
		urls[k] = v
	}
	urlStruct, err := structpb.NewStruct(urls)
	if err != nil {
		return nil, err
	}
	s.Fields["urls"] = structpb.NewStructValue(urlStruct)

	return s, nil
}
