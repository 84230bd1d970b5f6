package decl

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"entity-projector/entity"
	"entity-projector/internal/match"
)

// Sections of an entity declaration, used as ConfigError kinds.
const (
	KindComputed = "computed"
	KindSuppress = "suppress"
	KindFunc     = "func"
)

var (
	ErrUnknownFunc         = errors.New("is not a registered func")
	ErrConflictingSections = errors.New("is defined in more than one section")
)

// Funcs maps the names usable in a funcs section to Go definitions.
type Funcs map[string]entity.Computed

// Names returns the registered func names, sorted.
func (f Funcs) Names() []string {
	return slices.Sorted(maps.Keys(f))
}

// Build registers every entity declared in f with reg, in declaration order.
// It stops at the first invalid declaration.
func Build(f *File, reg *entity.Registry, funcs Funcs) error {
	if f == nil {
		return errors.New("declaration file is nil")
	}

	for i := range f.Entities {
		if _, err := BuildEntity(&f.Entities[i], reg, funcs); err != nil {
			return err
		}
	}

	return nil
}

// BuildEntity compiles d and registers it with reg. Parents must already be
// registered.
func BuildEntity(d *EntityDecl, reg *entity.Registry, funcs Funcs) (*entity.Type, error) {
	ref := &typeRef{}

	def, err := definition(d, reg.Lookup, reg.Names, funcs, ref)
	if err != nil {
		return nil, err
	}

	// validate without registering so expression names can be checked
	// against the inherited alias and aux slots
	probe, err := entity.Define(def)
	if err != nil {
		return nil, err
	}

	if err := checkExprNames(d, probe); err != nil {
		return nil, err
	}

	t, err := reg.Define(def)
	if err != nil {
		return nil, err
	}

	ref.t = t

	return t, nil
}

// typeRef is filled in once the type a definition belongs to exists.
type typeRef struct {
	t *entity.Type
}

// definition translates d into an entity.Definition.
func definition(
	d *EntityDecl,
	lookup func(string) (*entity.Type, bool),
	known func() []string,
	funcs Funcs,
	ref *typeRef,
) (entity.Definition, error) {
	parents := make([]*entity.Type, 0, len(d.Parents))

	for _, name := range d.Parents {
		p, ok := lookup(name)
		if !ok {
			return entity.Definition{}, &entity.ConfigError{
				Entity:      d.Name,
				Kind:        entity.KindParent,
				Name:        name,
				Suggestions: match.Suggest(name, known()),
				Err:         entity.ErrUnknownEntity,
			}
		}

		parents = append(parents, p)
	}

	if d.Alias.Invalid != "" {
		return entity.Definition{}, &entity.ConfigError{Entity: d.Name, Kind: entity.KindAlias, Err: entity.ErrAliasNotString}
	}

	if d.auxInvalid() != "" {
		return entity.Definition{}, &entity.ConfigError{Entity: d.Name, Kind: entity.KindAux, Err: entity.ErrAuxNotSequence}
	}

	defs := map[string]entity.FieldDef{}

	for _, name := range slices.Sorted(maps.Keys(d.definedNames())) {
		fd, err := fieldDef(d, name, funcs, ref)
		if err != nil {
			return entity.Definition{}, err
		}

		defs[name] = fd
	}

	return entity.Definition{
		Name:    d.Name,
		Fields:  []string(d.Fields),
		Alias:   d.Alias.Value,
		Aux:     d.auxNames(),
		Defs:    defs,
		Parents: parents,
	}, nil
}

// fieldDef builds the definition of a single field. A suppress expression
// wraps whatever else the field defines.
func fieldDef(d *EntityDecl, name string, funcs Funcs, ref *typeRef) (entity.FieldDef, error) {
	sections := d.definedBy(name)
	if len(sections) > 1 {
		return nil, &entity.ConfigError{Entity: d.Name, Kind: entity.KindField, Name: name, Err: ErrConflictingSections}
	}

	var base entity.FieldDef

	if v, ok := d.Constants[name]; ok {
		base = entity.Constant{Value: v}
	}

	if src, ok := d.Computed[name]; ok {
		program, err := compileExpr(src, false)
		if err != nil {
			return nil, &entity.ConfigError{Entity: d.Name, Kind: KindComputed, Name: name, Err: err}
		}

		base = computedExpr(program)
	}

	if fn, ok := d.Funcs[name]; ok {
		c, found := funcs[fn]
		if !found || c == nil {
			return nil, &entity.ConfigError{
				Entity:      d.Name,
				Kind:        KindFunc,
				Name:        fn,
				Suggestions: match.Suggest(fn, funcs.Names()),
				Err:         ErrUnknownFunc,
			}
		}

		base = c
	}

	src, ok := d.Suppress[name]
	if !ok {
		return base, nil
	}

	program, err := compileExpr(src, true)
	if err != nil {
		return nil, &entity.ConfigError{Entity: d.Name, Kind: KindSuppress, Name: name, Err: err}
	}

	return entity.Computed(func(e *entity.Entity) (entity.Result, error) {
		hide, err := runBool(program, e)
		if err != nil {
			return entity.Result{}, err
		}

		if hide {
			return entity.Suppress(), nil
		}

		switch b := base.(type) {
		case entity.Constant:
			return entity.Value(b.Value), nil
		case entity.Computed:
			return b(e)
		default:
			return e.Next(ref.t, name)
		}
	}), nil
}

// checkExprNames rejects expressions reading variables t does not provide.
func checkExprNames(d *EntityDecl, t *entity.Type) error {
	known := exprNames(t)

	check := func(kind string, exprs map[string]string) error {
		for _, field := range slices.Sorted(maps.Keys(exprs)) {
			unknown, err := unknownNames(exprs[field], known)
			if err != nil {
				return &entity.ConfigError{Entity: d.Name, Kind: kind, Name: field, Err: err}
			}

			if len(unknown) > 0 {
				return &entity.ConfigError{
					Entity:      d.Name,
					Kind:        kind,
					Name:        field,
					Suggestions: match.Suggest(unknown[0], known),
					Err:         fmt.Errorf("%w %q", ErrUnknownName, unknown[0]),
				}
			}
		}

		return nil
	}

	if err := check(KindComputed, d.Computed); err != nil {
		return err
	}

	return check(KindSuppress, d.Suppress)
}
