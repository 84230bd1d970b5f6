// Package entity presents arbitrary Go values through a declared, ordered
// list of named fields.
//
// A Type is declared once with Define:
//
//	var UserEntity = entity.MustDefine(entity.Definition{
//		Name:   "UserEntity",
//		Fields: []string{"id", "name", "phone_number"},
//		Alias:  "user",
//		Defs: map[string]entity.FieldDef{
//			"name": entity.Func(fullName),
//		},
//	})
//
// and then wraps any number of objects with New. Each declared field is
// resolved against the entity first and the wrapped object second:
//
//  1. the bootstrap names (_ALIAS_, _FIELDS_, _o, _AUX_OBJECTS_)
//  2. the alias, which returns the wrapped object itself
//  3. aux objects supplied to New
//  4. anything else must be a declared field
//  5. a Constant or Computed definition, searched through the type's ancestors
//  6. the wrapped object: a Resolver, a method, a map key, a field, a tag
//  7. a func value taking no arguments is called
//
// A Computed definition may return Suppress to leave its field out of the
// current materialization. ToMapping, Pairs, Map and MergeInto resolve every
// field each time they are called, so an entity always reflects the current
// state of the object it wraps.
//
// Definitions are validated when the type is defined and aux objects when an
// instance is constructed; both report a *ConfigError. Reads report a
// *FieldError.
package entity
