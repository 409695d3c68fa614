package prompts

import (
	"fmt"
	"sort"
	"strings"
)

// Generator produces the text of one prompt version. It is called every
// time the version is resolved; nothing is cached.
type Generator func() (string, error)

// Text returns a Generator that always produces s.
func Text(s string) Generator {
	return func() (string, error) {
		return s, nil
	}
}

// Func adapts an infallible text function to a Generator.
func Func(f func() string) Generator {
	if f == nil {
		return nil
	}
	return func() (string, error) {
		return f(), nil
	}
}

// Registry maps version identifiers to generators. It is read-only once
// built and can be shared between goroutines.
type Registry struct {
	generators map[string]Generator
	versions   []string
}

// NewRegistry validates every entry of generators and returns the registry.
// An empty map, a key rejected by CheckVersion or a nil generator is
// rejected with ErrInvalidConfiguration.
func NewRegistry(generators map[string]Generator) (*Registry, error) {
	if len(generators) == 0 {
		return nil, &ConfigurationError{Field: "versions", Reason: "versions map cannot be empty"}
	}

	r := &Registry{
		generators: make(map[string]Generator, len(generators)),
		versions:   make([]string, 0, len(generators)),
	}
	for version, generator := range generators {
		if err := CheckVersion(version); err != nil {
			return nil, err
		}
		if generator == nil {
			return nil, &ConfigurationError{
				Field:  "versions." + version,
				Reason: "generator must be a non-nil function",
			}
		}
		r.generators[version] = generator
		r.versions = append(r.versions, version)
	}
	sort.Strings(r.versions)

	return r, nil
}

// CheckVersion rejects version identifiers that are empty or only
// whitespace. An empty version is reserved for "let the strategy decide",
// and a blank one could never be requested on purpose.
func CheckVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return &ConfigurationError{
			Field:  "versions",
			Reason: fmt.Sprintf("version key %q must be a non-empty string", version),
		}
	}
	return nil
}

// MustRegistry is NewRegistry for static definitions; it panics on error.
func MustRegistry(generators map[string]Generator) *Registry {
	r, err := NewRegistry(generators)
	if err != nil {
		panic(err)
	}
	return r
}

// Versions returns the registered version identifiers in lexical order.
func (r *Registry) Versions() []string {
	out := make([]string, len(r.versions))
	copy(out, r.versions)
	return out
}

func (r *Registry) Len() int {
	return len(r.versions)
}

func (r *Registry) Has(version string) bool {
	_, ok := r.generators[version]
	return ok
}

// Resolve invokes the generator registered for version.
func (r *Registry) Resolve(version string) (string, error) {
	generator, ok := r.generators[version]
	if !ok {
		return "", &VersionNotFoundError{Version: version, Available: r.Versions()}
	}

	text, err := generator()
	if err != nil {
		return "", &GeneratorOutputError{Version: version, Err: err}
	}
	return text, nil
}
