package analyze

import (
	"fmt"
	"go/types"
	"reflect"
	"slices"
	"strings"

	"entity-projector/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "entity-projector/store"
	Name    string // e.g., "Order"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// ParseTypeID splits "path/to/pkg.Name" at the last dot.
func ParseTypeID(s string) TypeID {
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return TypeID{Name: s}
	}

	return TypeID{PkgPath: s[:i], Name: s[i+1:]}
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown  TypeKind = iota
	TypeKindBasic             // int, string, bool, etc.
	TypeKindStruct            // struct type
	TypeKindPointer           // pointer to another type
	TypeKindSlice             // slice of another type
	TypeKindMap               // map type
	TypeKindAlias             // named type wrapping another
	TypeKindExternal          // external/opaque type (e.g., time.Time)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindMap:
		return "map"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID       TypeID       // Unique identifier (empty for unnamed types like *T or []T)
	Kind     TypeKind     // Kind of type
	ElemType *TypeInfo    // For pointers, slices and maps, the element type
	KeyType  *TypeInfo    // For maps, the key type
	Fields   []FieldInfo  // For structs, the list of exported fields
	Methods  []MethodInfo // For named types, exported methods of T and *T
	GoType   types.Type   // The original go/types.Type
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// Method returns the exported method with the given name.
func (t *TypeInfo) Method(name string) (*MethodInfo, bool) {
	for i := range t.Methods {
		if t.Methods[i].Name == name {
			return &t.Methods[i], true
		}
	}

	return nil, false
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// JSONName returns the JSON tag name if present, otherwise the field name.
func (f *FieldInfo) JSONName() string {
	if name := f.TagName("json"); name != "" {
		return name
	}

	return f.Name
}

// TagName returns the name part of the key tag, empty when absent or "-".
func (f *FieldInfo) TagName(key string) string {
	name, _, _ := strings.Cut(f.Tag.Get(key), ",")
	if name == "-" {
		return ""
	}

	return name
}

// HasTag returns true if the field has the specified tag.
func (f *FieldInfo) HasTag(key string) bool {
	return f.Tag.Get(key) != ""
}

// MethodInfo describes an exported method.
type MethodInfo struct {
	Name         string
	Params       int  // Number of parameters, receiver excluded
	Results      int  // Number of results
	ReturnsError bool // Last result is error
	PointerRecv  bool // Only in the method set of *T
}

// Invocable reports whether an entity can call the method to produce a
// value: no parameters, and one result or a value and an error.
func (m *MethodInfo) Invocable() bool {
	if m.Params != 0 {
		return false
	}

	return m.Results == 1 || (m.Results == 2 && m.ReturnsError)
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// Find looks a type up by bare name ("Order") or by full name
// ("entity-projector/store.Order"). A bare name declared by more than one
// loaded package is an error listing the candidates.
func (g *TypeGraph) Find(name string) (*TypeInfo, error) {
	if strings.Contains(name, "/") {
		if info := g.GetType(ParseTypeID(name)); info != nil {
			return info, nil
		}

		return nil, fmt.Errorf("type %s not found", name)
	}

	var ids []string

	for id := range g.Types {
		if id.Name == name {
			ids = append(ids, id.String())
		}
	}

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("type %s not found", name)
	case 1:
		return g.GetType(ParseTypeID(ids[0])), nil
	default:
		slices.Sort(ids)
		return nil, fmt.Errorf("type %s is ambiguous: %s", name, strings.Join(ids, ", "))
	}
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package
}
