package analyze

import (
	"fmt"

	"entity-projector/entity"
	"entity-projector/internal/diagnostic"
	"entity-projector/internal/match"
)

// CheckProxy reports, for each field of t without an entity-side definition,
// whether a value of the type described by info can supply it. It follows
// the lookup order entities use at run time: exact method, exact field,
// entity tag, json tag, then a field or method with the same normalized name.
//
// Fields that are supplied are reported as infos naming the member used.
// The wrapped value is assumed to be a T, not a *T.
func CheckProxy(t *entity.Type, info *TypeInfo) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	if t == nil {
		res.AddError("entity_is_nil", "entity type is nil", "", "")
		return res
	}

	if info == nil {
		res.AddError("type_is_nil", "wrapped type is nil", t.Name(), "")
		return res
	}

	if info.Kind == TypeKindMap {
		if info.KeyType == nil || info.KeyType.Kind != TypeKindBasic || info.KeyType.GoType.String() != "string" {
			res.AddError("map_key_not_string", fmt.Sprintf("%s has no string keys to look fields up by", TypeString(info)), t.Name(), "")
			return res
		}

		res.AddInfo("map_lookup", fmt.Sprintf("fields are looked up as keys of %s at run time", TypeString(info)), t.Name(), "")

		return res
	}

	if info.Kind != TypeKindStruct {
		res.AddError("type_not_struct", fmt.Sprintf("%s is a %s, only structs and maps can be checked", TypeString(info), info.Kind), t.Name(), "")
		return res
	}

	attrs := newAttrTable(info)

	for _, field := range t.Fields() {
		if owner, ok := t.DefinedBy(field); ok {
			res.AddInfo("entity_definition", "defined by entity "+owner.Name(), t.Name(), field)
			continue
		}

		attr, ok := attrs.lookup(field)
		if !ok {
			res.AddError("cannot_find_value",
				fmt.Sprintf("%s has no field or method to supply it", TypeString(info)),
				t.Name(), field, match.Suggest(field, attrs.names())...)

			continue
		}

		if attr.method == nil {
			res.AddInfo("supplied_by", fmt.Sprintf("%s %s", attr.path, TypeString(attr.field.Type)), t.Name(), field)
			continue
		}

		m := attr.method
		switch {
		case !m.Invocable():
			res.AddError("not_invocable",
				fmt.Sprintf("%s takes %d argument(s) and returns %d value(s): %v", attr.path, m.Params, m.Results, entity.ErrNotInvocable),
				t.Name(), field)
		case m.PointerRecv:
			res.AddWarning("pointer_receiver",
				fmt.Sprintf("%s has a pointer receiver and is only found when wrapping a *%s", attr.path, info.ID.Name),
				t.Name(), field)
		default:
			res.AddInfo("supplied_by", attr.path.String(), t.Name(), field)
		}
	}

	return res
}

// attr is a member of the wrapped type that can supply a field.
type attr struct {
	path   *TypePath
	field  *FieldInfo
	method *MethodInfo
}

// attrTable indexes a struct the way entities index values by reflection.
type attrTable struct {
	methods    map[string]attr
	fields     map[string]attr
	tagged     map[string]attr
	normalized map[string]attr
	all        []string
}

func newAttrTable(info *TypeInfo) *attrTable {
	tbl := &attrTable{
		methods:    map[string]attr{},
		fields:     map[string]attr{},
		tagged:     map[string]attr{},
		normalized: map[string]attr{},
	}

	root := NewTypePath(info.ID.Name)
	if !info.IsNamed() {
		root = NewTypePath("struct")
	}

	for i := range info.Methods {
		m := &info.Methods[i]
		a := attr{path: root.Call(m.Name), method: m}
		tbl.methods[m.Name] = a
		tbl.all = append(tbl.all, m.Name)
	}

	visible := visibleFields(info, root)

	for _, vf := range visible {
		setOnce(tbl.fields, vf.field.Name, vf)
		tbl.all = append(tbl.all, vf.field.Name)

		if tag := vf.field.TagName("entity"); tag != "" {
			setOnce(tbl.tagged, tag, vf)
			tbl.all = append(tbl.all, tag)
		}

		setOnce(tbl.normalized, match.NormalizeIdent(vf.field.Name), vf)
	}

	// entity tags win over json tags
	for _, vf := range visible {
		if tag := vf.field.TagName("json"); tag != "" {
			setOnce(tbl.tagged, tag, vf)
			tbl.all = append(tbl.all, tag)
		}
	}

	for i := range info.Methods {
		m := &info.Methods[i]
		setOnce(tbl.normalized, match.NormalizeIdent(m.Name), tbl.methods[m.Name])
	}

	return tbl
}

func (tbl *attrTable) lookup(name string) (attr, bool) {
	for _, idx := range []map[string]attr{tbl.methods, tbl.fields, tbl.tagged} {
		if a, ok := idx[name]; ok {
			return a, true
		}
	}

	a, ok := tbl.normalized[match.NormalizeIdent(name)]

	return a, ok
}

func (tbl *attrTable) names() []string { return tbl.all }

func setOnce(m map[string]attr, key string, a attr) {
	if _, ok := m[key]; !ok {
		m[key] = a
	}
}

// visibleFields returns the exported fields of info, promoted ones included,
// shallowest first. A promoted field is hidden by a shallower one of the same
// name.
func visibleFields(info *TypeInfo, root *TypePath) []attr {
	type level struct {
		info *TypeInfo
		path *TypePath
	}

	var (
		out     []attr
		seen    = map[string]struct{}{}
		visited = map[*TypeInfo]struct{}{}
		current = []level{{info: info, path: root}}
	)

	for len(current) > 0 {
		var next []level

		for _, lv := range current {
			if _, ok := visited[lv.info]; ok {
				continue
			}

			visited[lv.info] = struct{}{}

			for i := range lv.info.Fields {
				f := &lv.info.Fields[i]
				path := lv.path.Field(f.Name)

				if f.Embedded {
					if inner := structOf(f.Type); inner != nil {
						next = append(next, level{info: inner, path: path})
					}
				}

				if !f.Exported {
					continue
				}

				if _, dup := seen[f.Name]; dup {
					continue
				}

				seen[f.Name] = struct{}{}
				out = append(out, attr{path: path, field: f})
			}
		}

		current = next
	}

	return out
}

// structOf returns the struct an embedded field promotes from, if any.
func structOf(t *TypeInfo) *TypeInfo {
	if t == nil {
		return nil
	}

	if t.Kind == TypeKindPointer {
		t = t.ElemType
	}

	if t == nil || t.Kind != TypeKindStruct {
		return nil
	}

	return t
}
