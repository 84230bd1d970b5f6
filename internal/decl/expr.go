package decl

import (
	"errors"
	"fmt"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"

	"entity-projector/entity"
)

// Names every expression can use besides the alias and the aux slots.
const (
	envWrapped = "o"
	envField   = "field"
	envAttr    = "attr"
	envSelf    = "$env"
)

var exprOptions = []expr.Option{
	expr.Function(envAttr, func(params ...any) (any, error) {
		if len(params) != 2 {
			return nil, fmt.Errorf("attr: expected 2 arguments, got %d", len(params))
		}

		name, ok := params[1].(string)
		if !ok {
			return nil, fmt.Errorf("attr: name must be a string, got %T", params[1])
		}

		v, found, err := entity.Attr(params[0], name)
		if err != nil {
			return nil, err
		}

		if !found {
			return nil, fmt.Errorf("attr: %T has no attribute %q", params[0], name)
		}

		return v, nil
	}),
}

// compileExpr compiles src. Variables are looked up when the program runs.
func compileExpr(src string, asBool bool) (*vm.Program, error) {
	opts := exprOptions
	if asBool {
		opts = append(slices.Clone(opts), expr.AsBool())
	}

	return expr.Compile(src, opts...)
}

// envFor exposes e to an expression: the wrapped object as "o" and under the
// alias, each aux object under its slot name, and field(name) reading
// another field of e.
func envFor(e *entity.Entity) map[string]any {
	t := e.Type()

	env := map[string]any{
		envWrapped: e.Wrapped(),
		envField: func(name string) (any, error) {
			return e.Get(name)
		},
	}

	if alias := t.Alias(); alias != "" {
		env[alias] = e.Wrapped()
	}

	for _, slot := range t.AuxSlots() {
		env[slot], _ = e.Aux(slot)
	}

	return env
}

// computedExpr turns a compiled expression into a field definition.
func computedExpr(program *vm.Program) entity.Computed {
	return func(e *entity.Entity) (entity.Result, error) {
		v, err := vm.Run(program, envFor(e))
		if err != nil {
			return entity.Result{}, err
		}

		return entity.Value(v), nil
	}
}

// runBool evaluates a suppress expression.
func runBool(program *vm.Program, e *entity.Entity) (bool, error) {
	v, err := vm.Run(program, envFor(e))
	if err != nil {
		return false, err
	}

	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("suppress expression returned %T, want bool", v)
	}

	return b, nil
}

// unknownNames returns the variables src reads that are not in known.
// Call targets are left to the compiler.
func unknownNames(src string, known []string) ([]string, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}

	c := &identCollector{declared: map[string]struct{}{}, callees: map[*ast.IdentifierNode]struct{}{}}
	ast.Walk(&tree.Node, c)

	var unknown []string

	for _, id := range c.idents {
		if _, ok := c.callees[id]; ok {
			continue
		}

		if _, ok := c.declared[id.Value]; ok {
			continue
		}

		if id.Value == envSelf || slices.Contains(known, id.Value) || slices.Contains(unknown, id.Value) {
			continue
		}

		unknown = append(unknown, id.Value)
	}

	return unknown, nil
}

type identCollector struct {
	idents   []*ast.IdentifierNode
	declared map[string]struct{}
	callees  map[*ast.IdentifierNode]struct{}
}

func (c *identCollector) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		c.idents = append(c.idents, n)
	case *ast.VariableDeclaratorNode:
		c.declared[n.Name] = struct{}{}
	case *ast.CallNode:
		if id, ok := n.Callee.(*ast.IdentifierNode); ok {
			c.callees[id] = struct{}{}
		}
	}
}

// exprNames lists the variables available to expressions of t.
func exprNames(t *entity.Type) []string {
	names := []string{envWrapped, envField, envAttr}
	if alias := t.Alias(); alias != "" {
		names = append(names, alias)
	}

	return append(names, t.AuxSlots()...)
}

// ErrUnknownName is returned for expressions reading an undeclared variable.
var ErrUnknownName = errors.New("reads unknown name")
