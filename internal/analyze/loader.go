package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and records their exported named types.
type Analyzer struct {
	dir       string
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // recursive types resolve to the same entry
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir resolves relative package patterns against dir instead of the
// working directory.
func WithDir(dir string) Option {
	return func(a *Analyzer) { a.dir = dir }
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the packages matching patterns (e.g. "./store",
// "entity-projector/store") into the type graph and returns it. Every package
// error is reported, not only the first.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	pkgs, err := packages.Load(&packages.Config{Context: ctx, Dir: a.dir, Mode: LoadMode}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", strings.Join(patterns, " "), err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("load %s: %w", strings.Join(patterns, " "), err)
	}

	// all packages are registered before any type is analyzed, so types one
	// loaded package borrows from another are not taken for external ones
	for _, pkg := range pkgs {
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{Path: pkg.PkgPath, Name: pkg.Name}
	}

	for _, pkg := range pkgs {
		a.addPackageTypes(pkg)
	}

	return a.graph, nil
}

// addPackageTypes records the exported named types declared by pkg.
func (a *Analyzer) addPackageTypes(pkg *packages.Package) {
	pkgInfo := a.graph.Packages[pkg.PkgPath]
	scope := pkg.Types.Scope()

	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() {
			continue
		}

		id := TypeID{PkgPath: pkg.PkgPath, Name: name}

		info := a.analyzeType(tn.Type())
		info.ID = id

		a.graph.Types[id] = info
		pkgInfo.Types = append(pkgInfo.Types, id)
	}
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.Kind = TypeKindBasic

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = TypeKindMap
		info.KeyType = a.analyzeType(tt.Key())
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	default:
		// Interfaces, channels, funcs, etc. are marked as unknown
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()

	// predeclared named types such as error have no package
	if obj.Pkg() == nil {
		info.ID = TypeID{Name: obj.Name()}
		info.Kind = TypeKindExternal

		return
	}

	info.ID = TypeID{
		PkgPath: obj.Pkg().Path(),
		Name:    obj.Name(),
	}

	info.Methods = methodsOf(named)

	// time.Time and friends are opaque
	if a.isExternalPackage(obj.Pkg().Path()) {
		info.Kind = TypeKindExternal
		return
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	default:
		// e.g., type OrderStatus string
		info.Kind = TypeKindAlias
		info.ElemType = a.analyzeType(ut)
	}
}

var errorType = types.Universe.Lookup("error").Type()

// methodsOf lists the exported methods of *T, promoted ones included, and
// marks those missing from the method set of T.
func methodsOf(named *types.Named) []MethodInfo {
	valueSet := types.NewMethodSet(named)
	ptrSet := types.NewMethodSet(types.NewPointer(named))

	var methods []MethodInfo

	for i := range ptrSet.Len() {
		fn, ok := ptrSet.At(i).Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		sig, ok := fn.Type().(*types.Signature)
		if !ok {
			continue
		}

		results := sig.Results()
		m := MethodInfo{
			Name:        fn.Name(),
			Params:      sig.Params().Len(),
			Results:     results.Len(),
			PointerRecv: valueSet.Lookup(fn.Pkg(), fn.Name()) == nil,
		}

		if n := results.Len(); n > 0 {
			m.ReturnsError = types.Identical(results.At(n-1).Type(), errorType)
		}

		methods = append(methods, m)
	}

	return methods
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields extracts fields from a struct type.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)

		// embedded structs are kept even when unexported: their exported
		// fields are promoted
		if !field.Exported() && !field.Embedded() {
			continue
		}

		fieldInfo := FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		}

		info.Fields = append(info.Fields, fieldInfo)
	}
}
