package entity

import (
	"reflect"
	"strings"
	"sync"

	"entity-projector/internal/match"
)

// Resolver lets a wrapped object answer name lookups itself instead of
// being inspected by reflection.
type Resolver interface {
	Resolve(name string) (value any, ok bool, err error)
}

// Attr reads name off obj the same way an entity proxies onto its wrapped
// object. It does not invoke func values.
func Attr(obj any, name string) (any, bool, error) {
	return lookupAttr(obj, name)
}

// lookupAttr reads name off obj. The bool is false when obj has no such
// attribute.
//
// Lookup order for structs (and pointers to them):
//   - method with the exact name
//   - exported field with the exact name
//   - field tagged `entity:"name"`, then `json:"name"`
//   - field, then method, whose normalized identifier matches (first_name ~ FirstName)
func lookupAttr(obj any, name string) (any, bool, error) {
	if obj == nil {
		return nil, false, nil
	}

	if r, ok := obj.(Resolver); ok {
		return r.Resolve(name)
	}

	rv := reflect.ValueOf(obj)
	idx := indexFor(rv.Type())

	if i, ok := idx.methods[name]; ok {
		return rv.Method(i).Interface(), true, nil
	}

	base := rv
	for base.Kind() == reflect.Pointer || base.Kind() == reflect.Interface {
		if base.IsNil() {
			return nil, false, nil
		}

		base = base.Elem()
	}

	switch base.Kind() {
	case reflect.Map:
		return lookupMapKey(base, name)

	case reflect.Struct:
		if path, ok := idx.fields[name]; ok {
			return fieldValue(base, path)
		}

		if path, ok := idx.tagged[name]; ok {
			return fieldValue(base, path)
		}

		ref, ok := idx.normalized[match.NormalizeIdent(name)]
		if !ok {
			return nil, false, nil
		}

		if ref.method >= 0 {
			return rv.Method(ref.method).Interface(), true, nil
		}

		return fieldValue(base, ref.path)
	}

	return nil, false, nil
}

func lookupMapKey(m reflect.Value, name string) (any, bool, error) {
	keyType := m.Type().Key()
	if keyType.Kind() != reflect.String {
		return nil, false, nil
	}

	v := m.MapIndex(reflect.ValueOf(name).Convert(keyType))
	if !v.IsValid() {
		return nil, false, nil
	}

	return v.Interface(), true, nil
}

func fieldValue(base reflect.Value, path []int) (any, bool, error) {
	fv, err := base.FieldByIndexErr(path)
	if err != nil {
		// promoted through a nil embedded pointer
		return nil, false, nil
	}

	if !fv.CanInterface() {
		return nil, false, nil
	}

	return fv.Interface(), true, nil
}

// attrIndex is the reflection metadata needed to proxy onto one Go type.
type attrIndex struct {
	methods    map[string]int
	fields     map[string][]int
	tagged     map[string][]int
	normalized map[string]attrRef
}

type attrRef struct {
	method int
	path   []int
}

var attrIndexCache sync.Map // reflect.Type -> *attrIndex

func indexFor(t reflect.Type) *attrIndex {
	if cached, ok := attrIndexCache.Load(t); ok {
		return cached.(*attrIndex)
	}

	idx := buildIndex(t)
	actual, _ := attrIndexCache.LoadOrStore(t, idx)

	return actual.(*attrIndex)
}

func buildIndex(t reflect.Type) *attrIndex {
	idx := &attrIndex{
		methods:    map[string]int{},
		fields:     map[string][]int{},
		tagged:     map[string][]int{},
		normalized: map[string]attrRef{},
	}

	for i := range t.NumMethod() {
		m := t.Method(i)
		if m.IsExported() {
			idx.methods[m.Name] = i
		}
	}

	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}

	if base.Kind() == reflect.Struct {
		var jsonTagged []reflect.StructField

		for _, f := range reflect.VisibleFields(base) {
			if !f.IsExported() {
				continue
			}

			setOnce(idx.fields, f.Name, f.Index)

			if tag := tagName(f.Tag.Get("entity")); tag != "" {
				setOnce(idx.tagged, tag, f.Index)
			}

			jsonTagged = append(jsonTagged, f)

			norm := match.NormalizeIdent(f.Name)
			if _, ok := idx.normalized[norm]; !ok {
				idx.normalized[norm] = attrRef{method: -1, path: f.Index}
			}
		}

		// entity tags win over json tags
		for _, f := range jsonTagged {
			if tag := tagName(f.Tag.Get("json")); tag != "" {
				setOnce(idx.tagged, tag, f.Index)
			}
		}
	}

	for i := range t.NumMethod() {
		m := t.Method(i)
		if !m.IsExported() {
			continue
		}

		norm := match.NormalizeIdent(m.Name)
		if _, ok := idx.normalized[norm]; !ok {
			idx.normalized[norm] = attrRef{method: i}
		}
	}

	return idx
}

func setOnce(m map[string][]int, key string, path []int) {
	if _, ok := m[key]; !ok {
		m[key] = path
	}
}

// tagName returns the name part of a struct tag value, empty for "-".
func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}

	return name
}
