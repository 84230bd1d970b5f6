package entity

import (
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"entity-projector/internal/match"
)

// Registry holds entity types by name.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Type
	order []string
	log   zerolog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used to report definitions.
func WithLogger(l zerolog.Logger) RegistryOption {
	return func(r *Registry) { r.log = l }
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		types: map[string]*Type{},
		log:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Define validates def and stores the resulting type under def.Name.
func (r *Registry) Define(def Definition) (*Type, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[def.Name]; exists {
		return nil, &ConfigError{Entity: def.Name, Kind: KindEntity, Err: ErrDuplicateEntity}
	}

	t, err := Define(def)
	if err != nil {
		r.log.Debug().Err(err).Str("entity", def.Name).Msg("rejected entity definition")
		return nil, err
	}

	r.types[t.name] = t
	r.order = append(r.order, t.name)

	r.log.Debug().
		Str("entity", t.name).
		Strs("fields", t.fields).
		Str("alias", t.alias).
		Strs("aux", t.aux).
		Int("ancestors", len(t.ancestors)-1).
		Msg("defined entity")

	return t, nil
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[name]

	return t, ok
}

// Get is Lookup returning a ConfigError, with suggestions, for unknown names.
func (r *Registry) Get(name string) (*Type, error) {
	if t, ok := r.Lookup(name); ok {
		return t, nil
	}

	return nil, &ConfigError{
		Entity:      name,
		Kind:        KindEntity,
		Suggestions: match.Suggest(name, r.Names()),
		Err:         ErrUnknownEntity,
	}
}

// Names returns registered type names in definition order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.order)
}
