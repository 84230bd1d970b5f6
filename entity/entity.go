package entity

import (
	"maps"
	"reflect"
	"slices"
)

// Entity presents a wrapped object through the fields of its Type.
// An Entity never mutates the wrapped object or its aux objects.
type Entity struct {
	typ     *Type
	wrapped any
	aux     map[string]any
}

// New wraps obj as an instance of t. aux must hold exactly the aux slots
// declared by t.
func (t *Type) New(obj any, aux map[string]any) (*Entity, error) {
	// unexpected names are reported before missing ones, in a stable order
	for _, name := range slices.Sorted(maps.Keys(aux)) {
		if !t.IsAux(name) {
			return nil, t.configErr(KindAux, name, ErrUnexpectedAux)
		}
	}

	for _, name := range t.aux {
		if _, ok := aux[name]; !ok {
			return nil, t.configErr(KindAux, name, ErrMissingAux)
		}
	}

	return &Entity{
		typ:     t,
		wrapped: obj,
		aux:     maps.Clone(aux),
	}, nil
}

// MustNew is like New but panics on a configuration error.
func (t *Type) MustNew(obj any, aux map[string]any) *Entity {
	e, err := t.New(obj, aux)
	if err != nil {
		panic(err)
	}

	return e
}

// Type returns the entity's type.
func (e *Entity) Type() *Type { return e.typ }

// Wrapped returns the wrapped object.
func (e *Entity) Wrapped() any { return e.wrapped }

// Aux returns the aux object bound to slot name.
func (e *Entity) Aux(name string) (any, bool) {
	v, ok := e.aux[name]
	return v, ok
}

// Dir lists the names a caller can read as fields.
func (e *Entity) Dir() []string { return e.typ.Fields() }

// As reads name from e and asserts it to T.
func As[T any](e *Entity, name string) (T, error) {
	var zero T

	v, err := e.Get(name)
	if err != nil {
		return zero, err
	}

	if v == nil {
		return zero, nil
	}

	t, ok := v.(T)
	if !ok {
		return zero, &FieldError{
			Entity: e.typ.name,
			Field:  name,
			Err:    typeMismatch(v, reflect.TypeFor[T]()),
		}
	}

	return t, nil
}
