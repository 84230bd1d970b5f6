package decl

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"entity-projector/entity"
	"entity-projector/internal/diagnostic"
	"entity-projector/internal/match"
)

// SupportedVersion is the declaration schema version this package reads.
const SupportedVersion = "1"

// Lint checks every declaration in f and reports all problems found, unlike
// Build which stops at the first one.
func Lint(f *File, funcs Funcs) *diagnostic.Diagnostics {
	return NewLinter(funcs).Lint(f)
}

// Linter checks declaration files in sequence. Entities of files linted
// earlier may be named as parents, the same way Build accepts them when the
// files are built into one registry in that order.
type Linter struct {
	funcs Funcs

	// types built so far, without registering anything
	scratch map[string]*entity.Type
	order   []string
}

// NewLinter creates a Linter resolving declared funcs against funcs.
func NewLinter(funcs Funcs) *Linter {
	return &Linter{funcs: funcs, scratch: map[string]*entity.Type{}}
}

// Lint checks every declaration in f against the entities of f and of the
// files linted before it.
func (l *Linter) Lint(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("file_is_nil", "declaration file is nil", "", "")
		return res
	}

	if f.Version != SupportedVersion {
		res.AddWarning("unsupported_version", fmt.Sprintf("version %q, expected %q", f.Version, SupportedVersion), "", "")
	}

	all := f.Names()

	for i := range f.Entities {
		d := &f.Entities[i]
		before := len(res.Errors)

		if d.Name == "" {
			res.AddError("missing_name", fmt.Sprintf("entity #%d has no name", i+1), "", "")
			continue
		}

		if slices.Contains(l.order, d.Name) {
			res.AddError("duplicate_entity", "entity is declared more than once", d.Name, "")
			continue
		}

		l.order = append(l.order, d.Name)

		parentsOK := lintParents(res, d, l.scratch, l.order, all)
		lintAlias(res, d)
		lintFields(res, d)
		lintAux(res, d)
		lintSections(res, d, l.funcs)

		if !parentsOK || len(res.Errors) > before {
			continue
		}

		t, err := scratchType(d, l.scratch)
		if err != nil {
			addConfigError(res, d.Name, err)
			continue
		}

		l.scratch[d.Name] = t

		lintExprNames(res, d, t)
		lintUnused(res, d, t)
	}

	return res
}

// lintParents reports unusable parents. It returns false when any parent has
// no scratch type, including parents that were invalid themselves.
func lintParents(res *diagnostic.Diagnostics, d *EntityDecl, scratch map[string]*entity.Type, order, all []string) bool {
	ok := true

	for _, p := range d.Parents {
		if _, found := scratch[p]; found {
			continue
		}

		ok = false

		switch {
		case p == d.Name:
			res.AddError("self_parent", "entity cannot inherit from itself", d.Name, p)
		case slices.Contains(all, p) && !slices.Contains(order, p):
			res.AddError("parent_declared_later", "parent must be declared before its children", d.Name, p)
		case slices.Contains(order, p):
			// declared earlier but invalid, already reported
		default:
			res.AddError("unknown_parent", "parent is not declared", d.Name, p, match.Suggest(p, order)...)
		}
	}

	return ok
}

func lintAlias(res *diagnostic.Diagnostics, d *EntityDecl) {
	switch alias := d.Alias; {
	case alias.Invalid != "":
		res.AddError("alias_not_string", fmt.Sprintf("alias %v", entity.ErrAliasNotString), d.Name, alias.Invalid)
	case alias.Value == "":
	case !entity.IsLegalIdentifier(alias.Value):
		res.AddError("illegal_alias", entity.ErrIllegalIdentifier.Error(), d.Name, alias.Value)
	case entity.IsReserved(alias.Value):
		res.AddWarning("alias_shadowed", "alias is a reserved name and can never be read", d.Name, alias.Value)
	}
}

func lintFields(res *diagnostic.Diagnostics, d *EntityDecl) {
	seen := map[string]struct{}{}

	for _, name := range d.Fields {
		switch {
		case entity.IsReserved(name):
			res.AddError("reserved_name", entity.ErrReservedName.Error(), d.Name, name)
		case d.Alias.Value != "" && name == d.Alias.Value:
			res.AddError("alias_collision", entity.ErrAliasCollision.Error(), d.Name, name)
		case entity.IsMangled(name):
			res.AddError("mangled_name", entity.ErrMangledName.Error(), d.Name, name)
		}

		if _, dup := seen[name]; dup {
			res.AddError("duplicate_field", entity.ErrDuplicateField.Error(), d.Name, name)
		}

		seen[name] = struct{}{}
	}
}

func lintAux(res *diagnostic.Diagnostics, d *EntityDecl) {
	if invalid := d.auxInvalid(); invalid != "" {
		res.AddError("aux_not_list", entity.ErrAuxNotSequence.Error(), d.Name, invalid)
		return
	}

	seen := map[string]struct{}{}

	for _, name := range d.auxNames() {
		switch {
		case entity.IsReserved(name):
			res.AddError("reserved_name", entity.ErrReservedName.Error(), d.Name, name)
		case d.Fields.Contains(name):
			res.AddError("field_collision", entity.ErrFieldCollision.Error(), d.Name, name)
		case d.Alias.Value != "" && name == d.Alias.Value:
			res.AddError("alias_collision", entity.ErrAliasCollision.Error(), d.Name, name)
		case entity.IsMangled(name):
			res.AddError("mangled_name", entity.ErrMangledName.Error(), d.Name, name)
		case !entity.IsLegalIdentifier(name):
			res.AddError("illegal_aux", entity.ErrIllegalIdentifier.Error(), d.Name, name)
		}

		if _, dup := seen[name]; dup {
			res.AddError("duplicate_aux", entity.ErrDuplicateField.Error(), d.Name, name)
		}

		seen[name] = struct{}{}

		if name == envWrapped || name == envField || name == envAttr {
			res.AddWarning("shadowed_name", "aux slot hides a name expressions rely on", d.Name, name)
		}
	}
}

// lintSections checks each field definition on its own: conflicting
// sections, unknown funcs and expressions that do not compile.
func lintSections(res *diagnostic.Diagnostics, d *EntityDecl, funcs Funcs) {
	for _, name := range slices.Sorted(maps.Keys(d.definedNames())) {
		if sections := d.definedBy(name); len(sections) > 1 {
			res.AddError("conflicting_definitions",
				fmt.Sprintf("defined in %s", strings.Join(sections, " and ")), d.Name, name)
		}
	}

	for _, field := range slices.Sorted(maps.Keys(d.Funcs)) {
		fn := d.Funcs[field]
		if c, ok := funcs[fn]; !ok || c == nil {
			res.AddError("unknown_func", fmt.Sprintf("func %q %v", fn, ErrUnknownFunc), d.Name, field,
				match.Suggest(fn, funcs.Names())...)
		}
	}

	for _, field := range slices.Sorted(maps.Keys(d.Computed)) {
		if _, err := compileExpr(d.Computed[field], false); err != nil {
			res.AddError("invalid_expression", err.Error(), d.Name, field)
		}
	}

	for _, field := range slices.Sorted(maps.Keys(d.Suppress)) {
		if _, err := compileExpr(d.Suppress[field], true); err != nil {
			res.AddError("invalid_expression", err.Error(), d.Name, field)
		}
	}
}

func lintExprNames(res *diagnostic.Diagnostics, d *EntityDecl, t *entity.Type) {
	known := exprNames(t)

	for _, exprs := range []map[string]string{d.Computed, d.Suppress} {
		for _, field := range slices.Sorted(maps.Keys(exprs)) {
			unknown, err := unknownNames(exprs[field], known)
			if err != nil {
				continue // reported by lintSections
			}

			for _, name := range unknown {
				res.AddError("unknown_name", fmt.Sprintf("expression %v %q", ErrUnknownName, name), d.Name, field,
					match.Suggest(name, known)...)
			}
		}
	}
}

// lintUnused warns about definitions for names that are not fields of t.
func lintUnused(res *diagnostic.Diagnostics, d *EntityDecl, t *entity.Type) {
	for _, name := range slices.Sorted(maps.Keys(d.definedNames())) {
		if !t.IsField(name) {
			res.AddWarning("unused_definition", "defines a name that is not a field", d.Name, name,
				match.Suggest(name, t.Fields())...)
		}
	}
}

// scratchType defines d against previously linted types, using placeholder
// definitions, to catch problems that only show once inheritance is applied.
func scratchType(d *EntityDecl, scratch map[string]*entity.Type) (*entity.Type, error) {
	defs := map[string]entity.FieldDef{}
	for name := range d.definedNames() {
		defs[name] = entity.Constant{}
	}

	parents := make([]*entity.Type, 0, len(d.Parents))
	for _, p := range d.Parents {
		parents = append(parents, scratch[p])
	}

	return entity.Define(entity.Definition{
		Name:    d.Name,
		Fields:  []string(d.Fields),
		Alias:   d.Alias.Value,
		Aux:     d.auxNames(),
		Defs:    defs,
		Parents: parents,
	})
}

func addConfigError(res *diagnostic.Diagnostics, entityName string, err error) {
	var ce *entity.ConfigError
	if !errors.As(err, &ce) {
		res.AddError("invalid_entity", err.Error(), entityName, "")
		return
	}

	res.AddError("invalid_entity", fmt.Sprintf("%s %v", ce.Kind, ce.Err), entityName, ce.Name, ce.Suggestions...)
}
