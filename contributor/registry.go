// Package contributor holds the registry of known contributors and links
// free-text author strings to it.
package contributor

import (
	_ "embed"
	"fmt"
	"iter"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed contributors.yaml
var embeddedRegistry []byte

// Contributor is one known person.
type Contributor struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Email    string `yaml:"email,omitempty" json:"email,omitempty"`
	Homepage string `yaml:"homepage,omitempty" json:"homepage,omitempty"`
	Bio      string `yaml:"bio,omitempty" json:"bio,omitempty"`
}

// DisplayName returns the name authors are matched against.
func (c *Contributor) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// Registry maps contributor ids to contributors and remembers the order
// they were added in. It is read-only once loaded.
type Registry struct {
	order []*Contributor
	byID  map[string]*Contributor
}

type registryFile struct {
	Contributors []*Contributor `yaml:"contributors"`
}

// NewRegistry creates a registry from contributors in the given order.
// Duplicate or empty ids are rejected.
func NewRegistry(contributors ...*Contributor) (*Registry, error) {
	r := &Registry{
		order: make([]*Contributor, 0, len(contributors)),
		byID:  make(map[string]*Contributor, len(contributors)),
	}
	for i, c := range contributors {
		if c == nil || c.ID == "" {
			return nil, fmt.Errorf("contributor %d: missing id", i)
		}
		if _, dup := r.byID[c.ID]; dup {
			return nil, fmt.Errorf("contributor %d: duplicate id %q", i, c.ID)
		}
		r.order = append(r.order, c)
		r.byID[c.ID] = c
	}
	return r, nil
}

// DefaultRegistry returns the embedded project contributor table.
func DefaultRegistry() (*Registry, error) {
	return ParseRegistry(embeddedRegistry)
}

// LoadRegistry reads a registry YAML file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry file: %w", err)
	}
	return ParseRegistry(data)
}

// ParseRegistry reads registry YAML content.
func ParseRegistry(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing registry YAML: %w", err)
	}
	return NewRegistry(f.Contributors...)
}

// Get retrieves a contributor by id.
func (r *Registry) Get(id string) (*Contributor, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Len returns the number of contributors.
func (r *Registry) Len() int {
	return len(r.order)
}

// All iterates contributors in registry order.
func (r *Registry) All() iter.Seq[*Contributor] {
	return func(yield func(*Contributor) bool) {
		for _, c := range r.order {
			if !yield(c) {
				return
			}
		}
	}
}
