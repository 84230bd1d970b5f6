package entity

import (
	"maps"
	"slices"
	"strconv"
)

// Definition declares an entity type.
//
// Fields, Alias and Aux are inherited from the first ancestor that declares
// them when left unset (nil slice, empty string), ancestors taken in C3 order.
// A non-nil empty slice declares "none" and stops inheritance.
type Definition struct {
	// Name identifies the type in errors and registries.
	Name string
	// Fields is the ordered list of field names to present.
	Fields []string
	// Alias names an attribute that returns the wrapped object itself.
	Alias string
	// Aux lists the auxiliary collaborators every instance requires.
	Aux []string
	// Defs holds the entity-side definitions keyed by field name.
	Defs map[string]FieldDef
	// Parents are searched, in order, for definitions this type lacks.
	Parents []*Type
}

// Type is a validated, immutable entity declaration.
type Type struct {
	name string

	// declared values as written, nil/"" when inherited
	declFields []string
	declAlias  string
	declAux    []string

	fields    []string
	fieldSet  map[string]struct{}
	alias     string
	aux       []string
	auxSet    map[string]struct{}
	defs      map[string]FieldDef
	parents   []*Type
	ancestors []*Type // searched for definitions
	mro       []*Type // searched for inherited fields, alias and aux
}

// Define validates def and returns the resulting Type.
func Define(def Definition) (*Type, error) {
	if def.Name == "" {
		return nil, &ConfigError{Entity: "<unnamed>", Kind: KindEntity, Err: ErrUnnamedEntity}
	}

	for i, p := range def.Parents {
		if p == nil {
			return nil, &ConfigError{Entity: def.Name, Kind: KindParent, Name: strconv.Itoa(i), Err: ErrNilParent}
		}
	}

	for name, d := range def.Defs {
		if c, ok := d.(Computed); d == nil || (ok && c == nil) {
			return nil, &ConfigError{Entity: def.Name, Kind: KindField, Name: name, Err: ErrNilDefinition}
		}
	}

	t := &Type{
		name:       def.Name,
		declFields: cloneNilable(def.Fields),
		declAlias:  def.Alias,
		declAux:    cloneNilable(def.Aux),
		defs:       maps.Clone(def.Defs),
		parents:    slices.Clone(def.Parents),
	}
	if t.defs == nil {
		t.defs = map[string]FieldDef{}
	}

	t.ancestors = linearize(t)

	mro, ok := c3(t)
	if !ok {
		return nil, &ConfigError{Entity: def.Name, Kind: KindParent, Err: ErrInconsistentHierarchy}
	}

	t.mro = mro
	t.inherit()

	if err := t.validate(); err != nil {
		return nil, err
	}

	t.fieldSet = toSet(t.fields)
	t.auxSet = toSet(t.aux)

	return t, nil
}

// MustDefine is like Define but panics if def is invalid. It simplifies
// package-level type declarations.
func MustDefine(def Definition) *Type {
	t, err := Define(def)
	if err != nil {
		panic(err)
	}

	return t
}

// linearize returns t followed by its ancestors in depth-first, declaration
// order, keeping only the first occurrence of each type.
func linearize(t *Type) []*Type {
	var (
		out  []*Type
		seen = map[*Type]struct{}{}
	)

	var walk func(*Type)
	walk = func(cur *Type) {
		if _, ok := seen[cur]; ok {
			return
		}

		seen[cur] = struct{}{}
		out = append(out, cur)

		for _, p := range cur.parents {
			walk(p)
		}
	}
	walk(t)

	return out
}

// c3 returns t followed by its ancestors in C3 order: every type comes before
// its parents, and parents keep their declaration order. It fails when no such
// order exists, e.g. when one parent is listed twice.
func c3(t *Type) ([]*Type, bool) {
	seqs := make([][]*Type, 0, len(t.parents)+1)
	for _, p := range t.parents {
		seqs = append(seqs, slices.Clone(p.mro))
	}

	seqs = append(seqs, slices.Clone(t.parents))
	out := []*Type{t}

	for {
		seqs = slices.DeleteFunc(seqs, func(s []*Type) bool { return len(s) == 0 })
		if len(seqs) == 0 {
			return out, true
		}

		var head *Type

		for _, s := range seqs {
			inTail := slices.ContainsFunc(seqs, func(o []*Type) bool { return slices.Contains(o[1:], s[0]) })
			if !inTail {
				head = s[0]
				break
			}
		}

		if head == nil {
			return nil, false
		}

		out = append(out, head)

		for i, s := range seqs {
			if s[0] == head {
				seqs[i] = s[1:]
			}
		}
	}
}

func (t *Type) inherit() {
	for _, a := range t.mro {
		if a.declFields != nil {
			t.fields = slices.Clone(a.declFields)
			break
		}
	}

	for _, a := range t.mro {
		if a.declAlias != "" {
			t.alias = a.declAlias
			break
		}
	}

	for _, a := range t.mro {
		if a.declAux != nil {
			t.aux = slices.Clone(a.declAux)
			break
		}
	}
}

// validate checks alias, then fields, then aux slots. The first violation wins.
func (t *Type) validate() error {
	if t.alias != "" && !IsLegalIdentifier(t.alias) {
		return t.configErr(KindAlias, t.alias, ErrIllegalIdentifier)
	}

	seen := make(map[string]struct{}, len(t.fields))
	for _, f := range t.fields {
		switch {
		case IsReserved(f):
			return t.configErr(KindField, f, ErrReservedName)
		case t.alias != "" && f == t.alias:
			return t.configErr(KindField, f, ErrAliasCollision)
		case IsMangled(f):
			return t.configErr(KindField, f, ErrMangledName)
		}

		if _, dup := seen[f]; dup {
			return t.configErr(KindField, f, ErrDuplicateField)
		}

		seen[f] = struct{}{}
	}

	auxSeen := make(map[string]struct{}, len(t.aux))
	for _, a := range t.aux {
		switch {
		case IsReserved(a):
			return t.configErr(KindAux, a, ErrReservedName)
		case slices.Contains(t.fields, a):
			return t.configErr(KindAux, a, ErrFieldCollision)
		case t.alias != "" && a == t.alias:
			return t.configErr(KindAux, a, ErrAliasCollision)
		case IsMangled(a):
			return t.configErr(KindAux, a, ErrMangledName)
		case !IsLegalIdentifier(a):
			return t.configErr(KindAux, a, ErrIllegalIdentifier)
		}

		if _, dup := auxSeen[a]; dup {
			return t.configErr(KindAux, a, ErrDuplicateField)
		}

		auxSeen[a] = struct{}{}
	}

	return nil
}

func (t *Type) configErr(kind, name string, err error) error {
	return &ConfigError{Entity: t.name, Kind: kind, Name: name, Err: err}
}

// lookupDef searches the types in order for a definition of name.
func lookupDef(types []*Type, name string) (FieldDef, *Type, bool) {
	for _, a := range types {
		if d, ok := a.defs[name]; ok {
			return d, a, true
		}
	}

	return nil, nil, false
}

// Name returns the type name.
func (t *Type) Name() string { return t.name }

// Fields returns a copy of the ordered field list.
func (t *Type) Fields() []string { return slices.Clone(t.fields) }

// Alias returns the alias name, empty when none is declared.
func (t *Type) Alias() string { return t.alias }

// AuxSlots returns a copy of the declared aux slot names.
func (t *Type) AuxSlots() []string { return slices.Clone(t.aux) }

// Parents returns the direct parent types.
func (t *Type) Parents() []*Type { return slices.Clone(t.parents) }

// Ancestors returns the search order used to find definitions, t first.
func (t *Type) Ancestors() []*Type { return slices.Clone(t.ancestors) }

// IsField reports whether name is one of the declared fields.
func (t *Type) IsField(name string) bool {
	_, ok := t.fieldSet[name]
	return ok
}

// IsAux reports whether name is a declared aux slot.
func (t *Type) IsAux(name string) bool {
	_, ok := t.auxSet[name]
	return ok
}

// DefinedBy returns the type in the hierarchy that defines name, if any.
func (t *Type) DefinedBy(name string) (*Type, bool) {
	_, owner, ok := lookupDef(t.ancestors, name)
	return owner, ok
}

func (t *Type) String() string { return t.name }

func cloneNilable(s []string) []string {
	if s == nil {
		return nil
	}

	return append([]string{}, s...)
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}

	return set
}
