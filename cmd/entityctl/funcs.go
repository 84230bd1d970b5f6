package main

import (
	"time"

	"entity-projector/entity"
	"entity-projector/internal/decl"
)

// now is replaced in tests.
var now = time.Now

// builtinFuncs are the Go funcs declaration files can name in a funcs
// section when loaded by entityctl.
func builtinFuncs() decl.Funcs {
	return decl.Funcs{
		"Now": entity.Func(func(*entity.Entity) any {
			return now().UTC().Format(time.RFC3339)
		}),
		"EntityName": entity.Func(func(e *entity.Entity) any {
			return e.Type().Name()
		}),
		"FieldNames": entity.Func(func(e *entity.Entity) any {
			return e.Dir()
		}),
	}
}
