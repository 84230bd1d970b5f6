// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with go/types to build an
// in-memory model of the structs an entity may wrap: their exported fields,
// promoted fields and method sets. CheckProxy uses that model to tell,
// without running anything, which entity fields a wrapped type can supply.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/map/external)
//   - FieldInfo: describes field name, type, tags, and embedding
//   - MethodInfo: describes arity, error result and receiver kind
package analyze
