// Package mapping provides field maps that rename the columns of legacy
// spreadsheets to standard field names.
package mapping

import "github.com/lehigh-university-libraries/reconcile/helpers"

// FieldMap is a named set of column renames for one kind of legacy sheet.
type FieldMap struct {
	// Name is the field map identifier
	Name string `yaml:"name" json:"name"`

	// Description provides human-readable documentation
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Fields lists the known source columns in sheet order
	Fields []FieldMapping `yaml:"fields" json:"fields"`
}

// FieldMapping describes how one source column is renamed.
type FieldMapping struct {
	// Source is the column header in the legacy sheet
	Source string `yaml:"source" json:"source"`

	// Target is the standard field name. Empty drops the column.
	Target string `yaml:"target,omitempty" json:"target,omitempty"`

	// Forms marks columns holding lists of word forms
	Forms bool `yaml:"forms,omitempty" json:"forms,omitempty"`
}

// Skip reports whether the column is dropped.
func (m FieldMapping) Skip() bool {
	return m.Target == ""
}

// Rename returns a row keyed by target names. Every mapped target is
// present; a missing source column yields an empty string.
func (fm *FieldMap) Rename(row map[string]string) map[string]string {
	out := make(map[string]string, len(fm.Fields))
	for _, f := range fm.Fields {
		if f.Skip() {
			continue
		}
		out[f.Target] = row[f.Source]
	}
	return out
}

// Targets returns the mapped target names in sheet order.
func (fm *FieldMap) Targets() []string {
	targets := make([]string, 0, len(fm.Fields))
	for _, f := range fm.Fields {
		if !f.Skip() {
			targets = append(targets, f.Target)
		}
	}
	return targets
}

// Lookup returns the mapping for a source column.
func (fm *FieldMap) Lookup(source string) (FieldMapping, bool) {
	for _, f := range fm.Fields {
		if f.Source == source {
			return f, true
		}
	}
	return FieldMapping{}, false
}

// Forms splits every forms column of a renamed row into parsed word forms.
// Columns with no forms are omitted.
func (fm *FieldMap) Forms(renamed map[string]string) map[string][]helpers.Form {
	out := make(map[string][]helpers.Form)
	for _, f := range fm.Fields {
		if f.Skip() || !f.Forms {
			continue
		}
		var forms []helpers.Form
		for _, word := range helpers.SplitWords(renamed[f.Target]) {
			forms = append(forms, helpers.ParseForm(word))
		}
		if len(forms) > 0 {
			out[f.Target] = forms
		}
	}
	return out
}
