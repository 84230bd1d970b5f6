package entity

// Result is the outcome of a computed field: either a value or a request to
// leave the field out of the current materialization.
type Result struct {
	value      any
	suppressed bool
}

// Value returns a Result carrying v.
func Value(v any) Result { return Result{value: v} }

// Suppress returns a Result that omits the field.
func Suppress() Result { return Result{suppressed: true} }

// Suppressed reports whether the field asked to be omitted.
func (r Result) Suppressed() bool { return r.suppressed }

// Value returns the carried value, nil when suppressed.
func (r Result) Value() any { return r.value }

// FieldDef is an entity-side definition of a field. It is either a Constant
// or a Computed.
type FieldDef interface {
	fieldDef()
}

// Constant is a fixed value shared by every instance of a type.
type Constant struct {
	Value any
}

// Computed is evaluated against the instance each time the field is resolved.
type Computed func(e *Entity) (Result, error)

func (Constant) fieldDef() {}
func (Computed) fieldDef() {}

// Func adapts an infallible computation that never suppresses.
func Func(fn func(e *Entity) any) Computed {
	return func(e *Entity) (Result, error) {
		return Value(fn(e)), nil
	}
}

// SuppressIf wraps fn so the field is omitted whenever cond reports true.
func SuppressIf(cond func(e *Entity) bool, fn Computed) Computed {
	return func(e *Entity) (Result, error) {
		if cond(e) {
			return Suppress(), nil
		}

		return fn(e)
	}
}
