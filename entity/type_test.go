package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefine_ConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		def      Definition
		wantErr  error
		wantKind string
		wantName string
	}{
		{
			name:     "unnamed",
			def:      Definition{Fields: []string{"foobar"}},
			wantErr:  ErrUnnamedEntity,
			wantKind: KindEntity,
		},
		{
			name:     "nil parent",
			def:      Definition{Name: "E", Parents: []*Type{mainType, nil}},
			wantErr:  ErrNilParent,
			wantKind: KindParent,
			wantName: "1",
		},
		{
			name:     "nil definition",
			def:      Definition{Name: "E", Fields: []string{"x"}, Defs: map[string]FieldDef{"x": nil}},
			wantErr:  ErrNilDefinition,
			wantKind: KindField,
			wantName: "x",
		},
		{
			name:     "nil computed",
			def:      Definition{Name: "E", Fields: []string{"x"}, Defs: map[string]FieldDef{"x": Computed(nil)}},
			wantErr:  ErrNilDefinition,
			wantKind: KindField,
			wantName: "x",
		},
		{
			name:     "bad identifier alias",
			def:      Definition{Name: "E", Fields: []string{"foobar"}, Alias: "$$$ dfkj dfjds"},
			wantErr:  ErrIllegalIdentifier,
			wantKind: KindAlias,
			wantName: "$$$ dfkj dfjds",
		},
		{
			name:     "reserved field",
			def:      Definition{Name: "E", Fields: []string{BootstrapFields}},
			wantErr:  ErrReservedName,
			wantKind: KindField,
			wantName: BootstrapFields,
		},
		{
			name:     "alias as a field",
			def:      Definition{Name: "E", Fields: []string{"hello", "wrapped", "foo"}, Alias: "wrapped"},
			wantErr:  ErrAliasCollision,
			wantKind: KindField,
			wantName: "wrapped",
		},
		{
			name:     "mangled field",
			def:      Definition{Name: "E", Fields: []string{"hello", "__dunder__"}},
			wantErr:  ErrMangledName,
			wantKind: KindField,
			wantName: "__dunder__",
		},
		{
			name:     "duplicate field",
			def:      Definition{Name: "E", Fields: []string{"a", "b", "a"}},
			wantErr:  ErrDuplicateField,
			wantKind: KindField,
			wantName: "a",
		},
		{
			name:     "reserved aux",
			def:      Definition{Name: "E", Fields: []string{"foobar"}, Aux: []string{BootstrapAux}},
			wantErr:  ErrReservedName,
			wantKind: KindAux,
			wantName: BootstrapAux,
		},
		{
			name:     "aux collides with field",
			def:      Definition{Name: "E", Fields: []string{"foobar", "foo"}, Aux: []string{"foo"}},
			wantErr:  ErrFieldCollision,
			wantKind: KindAux,
			wantName: "foo",
		},
		{
			name:     "mangled aux",
			def:      Definition{Name: "E", Fields: []string{"foobar"}, Aux: []string{"__dunder__"}},
			wantErr:  ErrMangledName,
			wantKind: KindAux,
			wantName: "__dunder__",
		},
		{
			name:     "illegal aux",
			def:      Definition{Name: "E", Fields: []string{"foobar"}, Aux: []string{"BAD IDENTIFIER $#@)(  3290908 )"}},
			wantErr:  ErrIllegalIdentifier,
			wantKind: KindAux,
			wantName: "BAD IDENTIFIER $#@)(  3290908 )",
		},
		{
			name:     "aux collides with alias",
			def:      Definition{Name: "E", Fields: []string{"foobar"}, Alias: "lolol", Aux: []string{"lolol"}},
			wantErr:  ErrAliasCollision,
			wantKind: KindAux,
			wantName: "lolol",
		},
		{
			name:     "duplicate aux",
			def:      Definition{Name: "E", Aux: []string{"clock", "clock"}},
			wantErr:  ErrDuplicateField,
			wantKind: KindAux,
			wantName: "clock",
		},
		{
			name:     "alias checked before fields",
			def:      Definition{Name: "E", Fields: []string{BootstrapWrapped}, Alias: "not valid"},
			wantErr:  ErrIllegalIdentifier,
			wantKind: KindAlias,
			wantName: "not valid",
		},
		{
			name:     "inherited field collides with own alias",
			def:      Definition{Name: "E", Parents: []*Type{brokenType}, Alias: "haha"},
			wantErr:  ErrAliasCollision,
			wantKind: KindField,
			wantName: "haha",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := Define(tt.def)
			require.Error(t, err)
			assert.Nil(t, typ)
			assert.ErrorIs(t, err, tt.wantErr)

			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.wantKind, ce.Kind)
			assert.Equal(t, tt.wantName, ce.Name)
		})
	}
}

func TestConfigError_Message(t *testing.T) {
	_, err := Define(Definition{Name: "E", Fields: []string{"__x"}})
	require.Error(t, err)
	assert.Equal(t, `entity E: field "__x" cannot begin with double underscore`, err.Error())

	_, err = Define(Definition{})
	require.Error(t, err)
	assert.Equal(t, "entity <unnamed>: entity: entity type must have a name", err.Error())

	err = &ConfigError{Entity: "E", Kind: KindParent, Name: "Usr", Suggestions: []string{"User"}, Err: ErrUnknownEntity}
	assert.Equal(t, `entity E: parent "Usr" entity type is not defined (did you mean "User"?)`, err.Error())
}

func TestMustDefine_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustDefine(Definition{Name: "E", Fields: []string{BootstrapAlias}})
	})
}

func TestDefine_Accessors(t *testing.T) {
	assert.Equal(t, "MainEntity", mainType.Name())
	assert.Equal(t, "MainEntity", mainType.String())
	assert.Equal(t, "wrapped", mainType.Alias())
	assert.Equal(t, []string{"aux_object"}, mainType.AuxSlots())
	assert.Len(t, mainType.Fields(), 8)
	assert.True(t, mainType.IsField("snow"))
	assert.False(t, mainType.IsField("fire"))
	assert.True(t, mainType.IsAux("aux_object"))
	assert.False(t, mainType.IsAux("wrapped"))

	// callers get copies
	fields := mainType.Fields()
	fields[0] = "changed"
	assert.Equal(t, "snow", mainType.Fields()[0])
}

func TestDefine_CopiesInput(t *testing.T) {
	fields := []string{"a"}
	defs := map[string]FieldDef{"a": Constant{Value: 1}}

	typ, err := Define(Definition{Name: "E", Fields: fields, Defs: defs})
	require.NoError(t, err)

	fields[0] = "b"
	defs["a"] = Constant{Value: 2}

	assert.Equal(t, []string{"a"}, typ.Fields())

	v, err := typ.MustNew(nil, nil).Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestDefine_Inheritance(t *testing.T) {
	t.Run("child declares its own aux as none", func(t *testing.T) {
		assert.Equal(t, "wrapped", childType.Alias())
		assert.Empty(t, childType.AuxSlots())
		assert.NotNil(t, childType.AuxSlots())
	})

	t.Run("unset fields are inherited", func(t *testing.T) {
		assert.Equal(t, brokenType.Fields(), childBrokenType.Fields())
	})

	t.Run("unset aux and alias are inherited", func(t *testing.T) {
		sub := MustDefine(Definition{Name: "Sub", Parents: []*Type{mainType}, Fields: []string{"snow"}})
		assert.Equal(t, "wrapped", sub.Alias())
		assert.Equal(t, []string{"aux_object"}, sub.AuxSlots())
	})

	t.Run("empty fields declare none", func(t *testing.T) {
		none := MustDefine(Definition{Name: "None", Parents: []*Type{mainType}, Fields: []string{}})
		assert.Empty(t, none.Fields())
	})

	t.Run("no fields anywhere", func(t *testing.T) {
		assert.Empty(t, emptyFieldsType.Fields())
		assert.Empty(t, emptyFieldsType.Alias())
	})
}

func TestDefine_AncestorOrder(t *testing.T) {
	a := MustDefine(Definition{Name: "A", Aux: []string{"clock"}})
	b := MustDefine(Definition{Name: "B", Parents: []*Type{a}})
	c := MustDefine(Definition{Name: "C", Parents: []*Type{a}, Aux: []string{"ledger"}, Alias: "obj"})
	d := MustDefine(Definition{Name: "D", Parents: []*Type{b, c}})

	names := func(ts []*Type) []string {
		out := make([]string, len(ts))
		for i, t := range ts {
			out[i] = t.Name()
		}

		return out
	}

	assert.Equal(t, []string{"D", "B", "A", "C"}, names(d.Ancestors()))
	assert.Equal(t, []string{"B", "C"}, names(d.Parents()))

	// definitions are searched depth-first, inherited declarations in C3
	// order: C comes before the A it shares with B
	assert.Equal(t, []string{"ledger"}, d.AuxSlots())
	// only C declares an alias
	assert.Equal(t, "obj", d.Alias())
}

func TestDefine_DiamondInheritsFromNearestDeclaration(t *testing.T) {
	a := MustDefine(Definition{
		Name:   "A",
		Fields: []string{"id"},
		Defs:   map[string]FieldDef{"name": Constant{Value: "from A"}},
	})
	b := MustDefine(Definition{Name: "B", Parents: []*Type{a}})
	c := MustDefine(Definition{
		Name:    "C",
		Parents: []*Type{a},
		Fields:  []string{"id", "name"},
		Defs:    map[string]FieldDef{"name": Constant{Value: "from C"}},
	})
	d := MustDefine(Definition{Name: "D", Parents: []*Type{b, c}})

	assert.Equal(t, []string{"id", "name"}, d.Fields())

	owner, ok := d.DefinedBy("name")
	require.True(t, ok)
	assert.Same(t, a, owner)

	got, err := d.MustNew(map[string]any{"id": 1}, nil).Map()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 1, "name": "from A"}, got)
}

func TestDefine_InconsistentHierarchy(t *testing.T) {
	a := MustDefine(Definition{Name: "A", Fields: []string{"id"}})
	b := MustDefine(Definition{Name: "B", Fields: []string{"id"}})
	x := MustDefine(Definition{Name: "X", Parents: []*Type{a, b}})
	y := MustDefine(Definition{Name: "Y", Parents: []*Type{b, a}})

	for _, parents := range [][]*Type{{x, y}, {a, a}} {
		_, err := Define(Definition{Name: "Z", Parents: parents})
		require.ErrorIs(t, err, ErrInconsistentHierarchy)

		var ce *ConfigError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, KindParent, ce.Kind)
	}

	_, err := Define(Definition{Name: "Z", Parents: []*Type{x, b}})
	assert.NoError(t, err)
}

func TestDefinedBy(t *testing.T) {
	owner, ok := childType.DefinedBy("fire")
	require.True(t, ok)
	assert.Same(t, childType, owner)

	owner, ok = childType.DefinedBy("snow")
	require.True(t, ok)
	assert.Same(t, mainType, owner)

	_, ok = childType.DefinedBy("haha")
	assert.False(t, ok)
}
