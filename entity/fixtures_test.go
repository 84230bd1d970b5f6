package entity

import "testing"

// representMe is the object most tests wrap.
type representMe struct {
	Haha   string
	Foobar int
}

func newRepresentMe() *representMe {
	return &representMe{Haha: "hehe", Foobar: 5}
}

func (r *representMe) AMethod(arg string) string { return arg }

func (r *representMe) AValue() int { return 100 }

func (r *representMe) AProperty() string { return "PROPERTASTIC" }

type auxObject struct {
	Foobar int
	Goobar int
}

func newAuxObject() *auxObject {
	return &auxObject{Foobar: 5, Goobar: 10}
}

func wrappedOf(e *Entity) *representMe {
	return e.Wrapped().(*representMe)
}

var mainType = MustDefine(Definition{
	Name: "MainEntity",
	Fields: []string{
		"snow",              // constant of the entity
		"haha",              // field of the object
		"foobar",            // field of the object
		"ent_method",        // computed from the wrapped object
		"ent_alias_method",  // computed through the alias
		"a_value",           // method of the object
		"a_property",        // method of the object
		"aux_object_method", // computed from an aux object
	},
	Alias: "wrapped",
	Aux:   []string{"aux_object"},
	Defs: map[string]FieldDef{
		"snow": Constant{Value: "COLD"},
		"fire": Constant{Value: "HOT"},
		"ent_method": Func(func(e *Entity) any {
			return wrappedOf(e).AMethod("echo")
		}),
		"ent_alias_method": Computed(func(e *Entity) (Result, error) {
			w, err := e.Get("wrapped")
			if err != nil {
				return Result{}, err
			}

			return Value(w.(*representMe).AMethod("echoWRAP")), nil
		}),
		"aux_object_method": Computed(func(e *Entity) (Result, error) {
			aux, err := e.Get("aux_object")
			if err != nil {
				return Result{}, err
			}

			return Value(aux.(*auxObject).Foobar), nil
		}),
	},
})

var mainExpected = map[string]any{
	"snow":              "COLD",
	"haha":              "hehe",
	"foobar":            5,
	"ent_method":        "echo",
	"ent_alias_method":  "echoWRAP",
	"a_value":           100,
	"a_property":        "PROPERTASTIC",
	"aux_object_method": 5,
}

var childType = MustDefine(Definition{
	Name:    "ChildEntity",
	Parents: []*Type{mainType},
	Fields: []string{
		"snow",
		"haha",
		"foobar",
		"ent_method",
		"ent_alias_method",
		"a_value",
		"a_property",
		"subent_method",
		"fire",
	},
	Aux: []string{},
	Defs: map[string]FieldDef{
		"fire": Constant{Value: "VERY HOT"},
		"subent_method": Func(func(e *Entity) any {
			return wrappedOf(e).AMethod("SUB")
		}),
	},
})

var childExpected = map[string]any{
	"snow":             "COLD",
	"haha":             "hehe",
	"foobar":           5,
	"ent_method":       "echo",
	"ent_alias_method": "echoWRAP",
	"a_value":          100,
	"a_property":       "PROPERTASTIC",
	"fire":             "VERY HOT",
	"subent_method":    "SUB",
}

var suppressingType = MustDefine(Definition{
	Name:   "SuppressingEntity",
	Fields: []string{"hello", "foobar", "a_value"},
	Defs: map[string]FieldDef{
		"hello": Constant{Value: 7},
		"foobar": SuppressIf(
			func(e *Entity) bool { return wrappedOf(e).Foobar < 1 },
			Func(func(e *Entity) any { return wrappedOf(e).Foobar }),
		),
	},
})

var multipleAuxType = MustDefine(Definition{
	Name:   "MultipleAuxObjectEntity",
	Fields: []string{"aux1hit", "aux2hit", "objhit"},
	Alias:  "obj",
	Aux:    []string{"aux1", "aux2"},
	Defs: map[string]FieldDef{
		"aux1hit": Func(func(e *Entity) any {
			aux, _ := e.Aux("aux1")
			return aux.(*auxObject).Foobar
		}),
		"aux2hit": Func(func(e *Entity) any {
			aux, _ := e.Aux("aux2")
			return aux.(*auxObject).Goobar
		}),
		"objhit": Func(func(e *Entity) any { return wrappedOf(e).Foobar }),
	},
})

var (
	brokenType = MustDefine(Definition{
		Name:   "BrokenEntity",
		Fields: []string{"haha", "idontexist"},
	})
	childBrokenType = MustDefine(Definition{
		Name:    "ChildBrokenEntity",
		Parents: []*Type{brokenType},
	})
	childFixesType = MustDefine(Definition{
		Name:    "ChildFixesEntity",
		Parents: []*Type{brokenType},
		Fields:  []string{"haha"},
	})
	childBreaksType = MustDefine(Definition{
		Name:    "ChildBreaksEntity",
		Parents: []*Type{mainType},
		Fields:  []string{"idontexist"},
		Aux:     []string{},
	})
	emptyFieldsType = MustDefine(Definition{Name: "EmptyFieldsEntity"})
)

func newMain(t testing.TB) (*Entity, *representMe, *auxObject) {
	t.Helper()

	obj := newRepresentMe()
	aux := newAuxObject()

	return mainType.MustNew(obj, map[string]any{"aux_object": aux}), obj, aux
}
