package analyze

import (
	"strings"

	"entity-projector/internal/common"
)

// TypePath builds a readable path to a member of a type, e.g.
// "Order.Audit.CreatedBy" for a promoted field.
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Call appends a method call to the path.
func (p *TypePath) Call(method string) *TypePath {
	return p.Field(method + "()")
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeString returns a short human-readable form of t.
func TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindStruct, TypeKindAlias:
		if t.IsNamed() {
			return t.ID.Name
		}

		return "struct{...}"

	case TypeKindPointer:
		return "*" + TypeString(t.ElemType)

	case TypeKindSlice:
		return "[]" + TypeString(t.ElemType)

	case TypeKindMap:
		return "map[" + TypeString(t.KeyType) + "]" + TypeString(t.ElemType)

	case TypeKindExternal:
		if t.ID.PkgPath == "" {
			return t.ID.Name
		}

		return common.PkgAlias(t.ID.PkgPath) + "." + t.ID.Name

	default:
		if t.GoType != nil {
			return t.GoType.String()
		}

		return "<unknown>"
	}
}
