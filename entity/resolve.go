package entity

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"entity-projector/internal/match"
)

// Get reads name the way attribute access does: bootstrap names, then the
// alias, then aux objects, then declared fields. A suppressed field is
// reported as ErrSuppressed.
func (e *Entity) Get(name string) (any, error) {
	v, suppressed, err := e.resolve(name)
	if err != nil {
		return nil, err
	}

	if suppressed {
		return nil, e.fieldErr(name, ErrSuppressed)
	}

	return v, nil
}

// Item reads a declared field. Names outside the field list fail with
// ErrKeyNotPresent even when they are the alias or an aux slot.
func (e *Entity) Item(name string) (any, error) {
	if !e.typ.IsField(name) {
		return nil, &FieldError{
			Entity:      e.typ.name,
			Field:       name,
			Suggestions: match.Suggest(name, e.typ.fields),
			Err:         ErrKeyNotPresent,
		}
	}

	return e.Get(name)
}

// resolve runs the lookup chain for a single name.
func (e *Entity) resolve(name string) (value any, suppressed bool, err error) {
	switch name {
	case BootstrapAlias:
		return e.typ.alias, false, nil
	case BootstrapFields:
		return e.typ.Fields(), false, nil
	case BootstrapWrapped:
		return e.wrapped, false, nil
	case BootstrapAux:
		return maps.Clone(e.aux), false, nil
	}

	t := e.typ

	// nothing private is exposed by name
	if IsMangled(name) {
		return nil, false, e.fieldErr(name, ErrNoSuchField)
	}

	if t.alias != "" && name == t.alias {
		return e.wrapped, false, nil
	}

	if v, ok := e.aux[name]; ok {
		return v, false, nil
	}

	if !t.IsField(name) {
		return nil, false, &FieldError{
			Entity:      t.name,
			Field:       name,
			Suggestions: match.Suggest(name, t.fields),
			Err:         ErrNoSuchField,
		}
	}

	return e.resolveField(name, t.ancestors)
}

// resolveField finds name's definition among ancestors, falling back to the
// wrapped object, and invokes the result when it is a func.
func (e *Entity) resolveField(name string, ancestors []*Type) (value any, suppressed bool, err error) {
	def, _, found := lookupDef(ancestors, name)
	if found {
		switch d := def.(type) {
		case Constant:
			value = d.Value
		case Computed:
			res, err := d(e)
			if err != nil {
				return nil, false, e.wrapErr(name, err)
			}

			if res.Suppressed() {
				return nil, true, nil
			}

			value = res.Value()
		default:
			return nil, false, e.fieldErr(name, fmt.Errorf("unsupported definition %T", def))
		}
	} else {
		v, ok, err := lookupAttr(e.wrapped, name)
		if err != nil {
			return nil, false, e.wrapErr(name, err)
		}

		if !ok {
			return nil, false, e.fieldErr(name, ErrCannotFindValue)
		}

		value = v
	}

	value, err = invoke(value)
	if err != nil {
		return nil, false, e.wrapErr(name, err)
	}

	return value, false, nil
}

// Next resolves the declared field name as if owner, and every type searched
// before it, had no definition for it. Computed fields use it to extend an
// inherited definition or the proxied value.
func (e *Entity) Next(owner *Type, name string) (Result, error) {
	if !e.typ.IsField(name) {
		return Result{}, e.fieldErr(name, ErrNoSuchField)
	}

	rest := e.typ.ancestors
	if i := slices.Index(rest, owner); i >= 0 {
		rest = rest[i+1:]
	}

	v, suppressed, err := e.resolveField(name, rest)
	if err != nil {
		return Result{}, err
	}

	if suppressed {
		return Suppress(), nil
	}

	return Value(v), nil
}

// invoke calls v when it is a func taking no arguments and returning either
// a single value or a value and an error. Other values pass through.
func invoke(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func {
		return v, nil
	}

	if rv.IsNil() {
		return nil, nil
	}

	ft := rv.Type()
	if ft.NumIn() != 0 {
		return nil, ErrNotInvocable
	}

	switch {
	case ft.NumOut() == 1:
		return rv.Call(nil)[0].Interface(), nil
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
		out := rv.Call(nil)
		if errV := out[1].Interface(); errV != nil {
			return nil, errV.(error)
		}

		return out[0].Interface(), nil
	default:
		return nil, ErrNotInvocable
	}
}

var errorType = reflect.TypeFor[error]()

func (e *Entity) fieldErr(name string, err error) error {
	return &FieldError{Entity: e.typ.name, Field: name, Err: err}
}

// wrapErr keeps errors raised by a nested read of the same entity as they are.
func (e *Entity) wrapErr(name string, err error) error {
	if fe, ok := err.(*FieldError); ok && fe.Entity == e.typ.name {
		return fe
	}

	return e.fieldErr(name, err)
}

func typeMismatch(got any, want reflect.Type) error {
	return fmt.Errorf("value of type %T is not %s", got, want)
}
