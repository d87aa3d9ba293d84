package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/reconcile/helpers"
)

func TestEmbeddedLexicon(t *testing.T) {
	r, err := NewFieldMapRegistry()
	require.NoError(t, err)
	assert.Contains(t, r.List(), "dogon-lexicon")

	fm, ok := r.Get("dogon-lexicon")
	require.True(t, ok)
	assert.Len(t, fm.Fields, 52)
	assert.Len(t, fm.Targets(), 42)

	m, ok := fm.Lookup("français")
	require.True(t, ok)
	assert.Equal(t, "Francais", m.Target)

	m, ok = fm.Lookup("Ibi-So (JH)")
	require.True(t, ok)
	assert.True(t, m.Skip())

	m, ok = fm.Lookup("Jamsay (Douentza area, JH)")
	require.True(t, ok)
	assert.True(t, m.Forms)

	_, ok = fm.Lookup("unknown column")
	assert.False(t, ok)
}

func TestRename(t *testing.T) {
	fm := &FieldMap{
		Name: "test",
		Fields: []FieldMapping{
			{Source: "code #", Target: "code"},
			{Source: "English", Target: "English"},
			{Source: "Donno-So"},
			{Source: "Jamsay (JH)", Target: "Jamsay", Forms: true},
		},
	}

	got := fm.Rename(map[string]string{
		"code #":   "12",
		"Donno-So": "dropped",
		"extra":    "ignored",
	})

	assert.Equal(t, map[string]string{
		"code":    "12",
		"English": "",
		"Jamsay":  "",
	}, got)
}

func TestForms(t *testing.T) {
	fm := &FieldMap{
		Fields: []FieldMapping{
			{Source: "English", Target: "English"},
			{Source: "Jamsay (JH)", Target: "Jamsay", Forms: true},
			{Source: "Nanga (JH)", Target: "Nanga", Forms: true},
		},
	}

	renamed := fm.Rename(map[string]string{
		"English":     "tree, bush",
		"Jamsay (JH)": `túrú (pl. túrú-ŋ), kɔ̀rɔ́ ("shrub")`,
	})

	assert.Equal(t, map[string][]helpers.Form{
		"Jamsay": {
			{Name: "túrú", Comment: "pl. túrú-ŋ"},
			{Name: "kɔ̀rɔ́", Description: "shrub"},
		},
	}, fm.Forms(renamed))
}

func TestParseFieldMap_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "duplicate source", yaml: "name: x\nfields:\n  - {source: a, target: b}\n  - {source: a, target: c}\n"},
		{name: "missing source", yaml: "name: x\nfields:\n  - {target: b}\n"},
		{name: "bad yaml", yaml: "fields: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFieldMap([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.yaml"),
		[]byte("fields:\n  - {source: Word, target: word, forms: true}\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("fields: [\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	r, err := NewFieldMapRegistry()
	require.NoError(t, err)
	require.NoError(t, r.LoadFromDirectory(dir))

	assert.Equal(t, []string{"custom", "dogon-lexicon"}, r.List())

	fm, ok := r.Get("custom")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"word": "x"}, fm.Rename(map[string]string{"Word": "x"}))

	assert.NoError(t, r.LoadFromDirectory(filepath.Join(dir, "absent")))
}

func TestRegister(t *testing.T) {
	r, err := NewFieldMapRegistry()
	require.NoError(t, err)

	r.Register(&FieldMap{Name: "dogon-lexicon", Description: "override"})
	fm, ok := r.Get("dogon-lexicon")
	require.True(t, ok)
	assert.Equal(t, "override", fm.Description)
}

func TestMatchHeader(t *testing.T) {
	r, err := NewFieldMapRegistry()
	require.NoError(t, err)
	r.Register(&FieldMap{Name: "birds", Fields: []FieldMapping{
		{Source: "Bird", Target: "bird"},
		{Source: "Call", Target: "call"},
	}})

	fm, score := r.MatchHeader([]string{"code #", "English", "Français", "Jamsay (Douentza area, JH)", "notes"})
	require.NotNil(t, fm)
	assert.Equal(t, "dogon-lexicon", fm.Name)
	assert.InDelta(t, 0.8, score, 1e-9)

	fm, _ = r.MatchHeader([]string{"bird", " CALL "})
	require.NotNil(t, fm)
	assert.Equal(t, "birds", fm.Name)

	fm, score = r.MatchHeader([]string{"English", "a", "b", "c"})
	assert.Nil(t, fm)
	assert.Zero(t, score)

	fm, _ = r.MatchHeader(nil)
	assert.Nil(t, fm)
}
