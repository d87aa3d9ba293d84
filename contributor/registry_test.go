package contributor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegistry_KeepsDocumentOrder(t *testing.T) {
	reg, err := ParseRegistry([]byte(`
contributors:
  - id: z
    name: Zed Last
  - id: a
    name: Ada First
    homepage: http://example.org/
`))
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())

	var ids []string
	for c := range reg.All() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"z", "a"}, ids)

	c, ok := reg.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Ada First", c.DisplayName())
	assert.Equal(t, "http://example.org/", c.Homepage)
}

func TestParseRegistry_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "duplicate id", yaml: "contributors:\n  - {id: a, name: A}\n  - {id: a, name: B}\n"},
		{name: "missing id", yaml: "contributors:\n  - {name: A}\n"},
		{name: "bad yaml", yaml: "contributors: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegistry([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("contributors:\n  - {id: x, name: X Y}\n"), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultRegistry(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)
	assert.Equal(t, 11, reg.Len())

	c, ok := reg.Get("heath")
	require.True(t, ok)
	assert.Equal(t, "Jeffrey Heath", c.Name)
}

func TestDisplayNameFallsBackToID(t *testing.T) {
	c := &Contributor{ID: "anon"}
	assert.Equal(t, "anon", c.DisplayName())
}
