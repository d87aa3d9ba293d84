package cmd

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/reconcile/helpers"
	"github.com/lehigh-university-libraries/reconcile/mapping"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func fixed(fm *mapping.FieldMap) func([]string) (*mapping.FieldMap, error) {
	return func([]string) (*mapping.FieldMap, error) { return fm, nil }
}

func TestNormalizeLexicon(t *testing.T) {
	fm := &mapping.FieldMap{
		Name: "test",
		Fields: []mapping.FieldMapping{
			{Source: "English", Target: "English"},
			{Source: "français", Target: "Francais"},
			{Source: "Donno-So"},
			{Source: "Jamsay (JH)", Target: "Jamsay", Forms: true},
		},
	}

	in := "English,français,Donno-So,Jamsay (JH)\n" +
		"\"tree,  <b>bush</b>\",arbre,x,\"túrú (pl. túrú-ŋ), kɔ̀rɔ́\"\n" +
		"stone,pierre\n"

	var out bytes.Buffer
	n, err := normalizeLexicon(strings.NewReader(in), &out, fixed(fm))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	dec := json.NewDecoder(&out)

	var first lexiconRow
	require.NoError(t, dec.Decode(&first))
	assert.Equal(t, map[string]string{
		"English":  "tree, bush",
		"Francais": "arbre",
		"Jamsay":   "túrú (pl. túrú-ŋ), kɔ̀rɔ́",
	}, first.Fields)
	assert.Equal(t, []helpers.Form{
		{Name: "túrú", Comment: "pl. túrú-ŋ"},
		{Name: "kɔ̀rɔ́"},
	}, first.Forms["Jamsay"])

	var second lexiconRow
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "", second.Fields["Jamsay"])
	assert.Empty(t, second.Forms)
}

func TestNormalizeLexicon_Empty(t *testing.T) {
	var out bytes.Buffer
	n, err := normalizeLexicon(strings.NewReader(""), &out, fixed(&mapping.FieldMap{}))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, out.String())
}

func TestChooseFieldMap(t *testing.T) {
	registry, err := mapping.NewFieldMapRegistry()
	require.NoError(t, err)
	registry.Register(&mapping.FieldMap{Name: "birds", Fields: []mapping.FieldMapping{{Source: "Bird", Target: "bird"}}})

	fm, err := chooseFieldMap(registry, "birds", []string{"English"})
	require.NoError(t, err)
	assert.Equal(t, "birds", fm.Name)

	fm, err = chooseFieldMap(registry, "", []string{"Bird"})
	require.NoError(t, err)
	assert.Equal(t, "birds", fm.Name)

	fm, err = chooseFieldMap(registry, "", []string{"unknown"})
	require.NoError(t, err)
	assert.Equal(t, defaultFieldMap, fm.Name)

	_, err = chooseFieldMap(registry, "absent", nil)
	assert.Error(t, err)
}
