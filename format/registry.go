package format

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

var (
	// ErrUnknownFormat is returned for a name no plugin registered.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrUnsupported is returned when a plugin lacks the requested direction.
	ErrUnsupported = errors.New("operation not supported")
	// ErrUndetected is returned when neither extension nor content identify
	// a plugin.
	ErrUndetected = errors.New("could not detect format")
)

// Registry maps plugin names, and the file extensions they claim, to
// plugins. Plugins register from init, so a Registry is not safe for
// concurrent Register calls.
type Registry struct {
	formats map[string]Format
	byExt   map[string][]string
}

// DefaultRegistry holds the plugins linked into the binary.
var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Format),
		byExt:   make(map[string][]string),
	}
}

// Register adds f, replacing a plugin of the same name.
func (r *Registry) Register(f Format) {
	name := strings.ToLower(f.Name())
	if old, ok := r.formats[name]; ok {
		r.forgetExtensions(name, old)
	}
	r.formats[name] = f
	for _, ext := range f.Extensions() {
		ext = strings.ToLower(ext)
		r.byExt[ext] = append(r.byExt[ext], name)
		slices.Sort(r.byExt[ext])
	}
}

func (r *Registry) forgetExtensions(name string, f Format) {
	for _, ext := range f.Extensions() {
		ext = strings.ToLower(ext)
		r.byExt[ext] = slices.DeleteFunc(r.byExt[ext], func(n string) bool { return n == name })
	}
}

// Get looks a plugin up by case-insensitive name.
func (r *Registry) Get(name string) (Format, bool) {
	f, ok := r.formats[strings.ToLower(name)]
	return f, ok
}

func (r *Registry) GetParser(name string) (Parser, error) {
	return lookup[Parser](r, name, "parsing")
}

func (r *Registry) GetSerializer(name string) (Serializer, error) {
	return lookup[Serializer](r, name, "serialization")
}

func lookup[T any](r *Registry, name, direction string) (T, error) {
	var zero T
	f, ok := r.Get(name)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	t, ok := f.(T)
	if !ok {
		return zero, fmt.Errorf("format %s does not support %s: %w", name, direction, ErrUnsupported)
	}
	return t, nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	return slices.Sorted(maps.Keys(r.formats))
}

// DetectFormat picks a plugin for filename. A claimed extension wins; when
// several plugins claim it, the first name in sort order is used. Otherwise
// the plugins are asked about peek in name order.
func (r *Registry) DetectFormat(filename string, peek []byte) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if names := r.byExt[ext]; ext != "" && len(names) > 0 {
		return r.formats[names[0]], nil
	}

	f, err := r.DetectFromContent(peek)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, ErrUndetected)
	}
	return f, nil
}

// DetectFromContent asks each plugin, in name order, whether it can parse
// peek. Surrounding whitespace is ignored.
func (r *Registry) DetectFromContent(peek []byte) (Format, error) {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 {
		return nil, ErrUndetected
	}
	for _, name := range r.List() {
		if f := r.formats[name]; f.CanParse(peek) {
			return f, nil
		}
	}
	return nil, ErrUndetected
}

// The package-level helpers act on DefaultRegistry.

func Register(f Format) { DefaultRegistry.Register(f) }

func Get(name string) (Format, bool) { return DefaultRegistry.Get(name) }

func GetParser(name string) (Parser, error) { return DefaultRegistry.GetParser(name) }

func GetSerializer(name string) (Serializer, error) { return DefaultRegistry.GetSerializer(name) }

func List() []string { return DefaultRegistry.List() }

func DetectFormat(filename string, peek []byte) (Format, error) {
	return DefaultRegistry.DetectFormat(filename, peek)
}
