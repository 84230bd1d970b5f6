package decl

// File represents a complete entity declaration file.
type File struct {
	// Version of the declaration schema.
	Version string `yaml:"version,omitempty" toml:"version,omitempty"`
	// Entities are defined in order; a parent must be declared before its children.
	Entities []EntityDecl `yaml:"entities" toml:"entities"`
}

// EntityDecl declares a single entity type.
//
// A field is given at most one of a constant, a computed expression or a
// registered func. A suppress expression may be combined with any of them;
// when it is false and the field has no other definition here, resolution
// continues with the parents and then the wrapped object.
type EntityDecl struct {
	// Name identifies the entity type.
	Name string `yaml:"name" toml:"name"`
	// Parents lists previously declared entity names to inherit from.
	Parents StringOrArray `yaml:"parents,omitempty" toml:"parents,omitempty"`
	// Fields is the ordered field list. Absent means inherited, [] means none.
	Fields StringOrArray `yaml:"fields,omitempty" toml:"fields"`
	// Alias names the attribute that returns the wrapped object.
	Alias AliasName `yaml:"alias,omitempty" toml:"alias,omitempty"`
	// Aux lists the auxiliary object slots. Nil means inherited.
	Aux *SlotList `yaml:"aux,omitempty" toml:"aux,omitempty"`
	// Constants map field names to fixed values.
	Constants map[string]any `yaml:"constants,omitempty" toml:"constants,omitempty"`
	// Computed map field names to expressions evaluated per read.
	Computed map[string]string `yaml:"computed,omitempty" toml:"computed,omitempty"`
	// Suppress map field names to boolean expressions; true hides the field.
	Suppress map[string]string `yaml:"suppress,omitempty" toml:"suppress,omitempty"`
	// Funcs map field names to funcs registered with the builder.
	Funcs map[string]string `yaml:"funcs,omitempty" toml:"funcs,omitempty"`
}

// StringOrArray accepts either a single string or a list of strings.
type StringOrArray []string

// AliasName is the declared alias. Values that are not strings are kept so
// they can be reported instead of failing the whole parse.
type AliasName struct {
	Value string
	// Invalid describes the offending value when the alias was not a string.
	Invalid string
}

// IsZero reports whether no alias was declared.
func (a AliasName) IsZero() bool { return a.Value == "" && a.Invalid == "" }

// SlotList is a declared aux slot list. Only a list is accepted; Invalid
// describes anything else.
type SlotList struct {
	Names   []string
	Invalid string
}

// Slots declares the given aux slots. Slots() declares none.
func Slots(names ...string) *SlotList {
	if names == nil {
		names = []string{}
	}

	return &SlotList{Names: names}
}

// auxNames returns the declared slots, nil when inherited.
func (d *EntityDecl) auxNames() []string {
	if d.Aux == nil {
		return nil
	}

	return d.Aux.Names
}

// auxInvalid describes a declared aux value that was not a list.
func (d *EntityDecl) auxInvalid() string {
	if d.Aux == nil {
		return ""
	}

	return d.Aux.Invalid
}

// definedBy returns which sections of d define field.
func (d *EntityDecl) definedBy(field string) []string {
	var sections []string

	if _, ok := d.Constants[field]; ok {
		sections = append(sections, "constants")
	}

	if _, ok := d.Computed[field]; ok {
		sections = append(sections, "computed")
	}

	if _, ok := d.Funcs[field]; ok {
		sections = append(sections, "funcs")
	}

	return sections
}

// definedNames returns every field name d gives a definition for.
func (d *EntityDecl) definedNames() map[string]struct{} {
	names := map[string]struct{}{}
	for n := range d.Constants {
		names[n] = struct{}{}
	}

	for n := range d.Computed {
		names[n] = struct{}{}
	}

	for n := range d.Funcs {
		names[n] = struct{}{}
	}

	for n := range d.Suppress {
		names[n] = struct{}{}
	}

	return names
}

// Entity returns the declaration named name.
func (f *File) Entity(name string) (*EntityDecl, bool) {
	for i := range f.Entities {
		if f.Entities[i].Name == name {
			return &f.Entities[i], true
		}
	}

	return nil, false
}

// Names returns the declared entity names in order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Entities))
	for _, e := range f.Entities {
		names = append(names, e.Name)
	}

	return names
}
