package mapping

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fieldmaps/*.yaml
var embeddedFieldMaps embed.FS

// FieldMapRegistry holds loaded field maps.
type FieldMapRegistry struct {
	maps map[string]*FieldMap
}

// NewFieldMapRegistry creates a new registry with the embedded field maps loaded.
func NewFieldMapRegistry() (*FieldMapRegistry, error) {
	r := &FieldMapRegistry{
		maps: make(map[string]*FieldMap),
	}

	entries, err := embeddedFieldMaps.ReadDir("fieldmaps")
	if err != nil {
		return nil, fmt.Errorf("reading embedded field maps: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := embeddedFieldMaps.ReadFile("fieldmaps/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading embedded field map %s: %w", entry.Name(), err)
		}

		fm, err := parseFieldMap(data)
		if err != nil {
			return nil, fmt.Errorf("embedded field map %s: %w", entry.Name(), err)
		}

		if fm.Name == "" {
			fm.Name = strings.TrimSuffix(entry.Name(), ".yaml")
		}
		r.maps[fm.Name] = fm
	}

	return r, nil
}

// LoadFieldMap loads a field map from a file path.
func LoadFieldMap(path string) (*FieldMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading field map file: %w", err)
	}

	return parseFieldMap(data)
}

func parseFieldMap(data []byte) (*FieldMap, error) {
	var fm FieldMap
	if err := yaml.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("parsing field map YAML: %w", err)
	}

	seen := make(map[string]bool, len(fm.Fields))
	for _, f := range fm.Fields {
		if f.Source == "" {
			return nil, fmt.Errorf("field map %q: mapping without source", fm.Name)
		}
		if seen[f.Source] {
			return nil, fmt.Errorf("field map %q: duplicate source %q", fm.Name, f.Source)
		}
		seen[f.Source] = true
	}
	return &fm, nil
}

// Get retrieves a field map by name.
func (r *FieldMapRegistry) Get(name string) (*FieldMap, bool) {
	fm, ok := r.maps[name]
	return fm, ok
}

// Register adds a field map to the registry, replacing one of the same name.
func (r *FieldMapRegistry) Register(fm *FieldMap) {
	r.maps[fm.Name] = fm
}

// List returns all registered field map names in sorted order.
func (r *FieldMapRegistry) List() []string {
	names := make([]string, 0, len(r.maps))
	for name := range r.maps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LoadFromDirectory loads all field maps from a directory. A missing
// directory is not an error; invalid files are skipped.
func (r *FieldMapRegistry) LoadFromDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading field map directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		fm, err := LoadFieldMap(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}

		if fm.Name == "" {
			fm.Name = strings.TrimSuffix(entry.Name(), ".yaml")
		}
		r.maps[fm.Name] = fm
	}

	return nil
}

// UserDir returns the directory holding user field maps.
func UserDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".reconcile", "fieldmaps"), nil
}
