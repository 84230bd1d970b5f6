// Package decl reads entity types from YAML or TOML declaration files and
// registers them with an entity.Registry.
//
// # Schema Overview
//
//	version: "1"
//	entities:
//	  - name: User
//	    alias: user
//	    fields: [id, name, email, phone_number, kind]
//	    aux: [clock]
//	    # fixed values
//	    constants:
//	      kind: person
//	    # expressions, evaluated on every read
//	    computed:
//	      name: 'user.first_name + " " + user.last_name'
//	    # true hides the field from materialization
//	    suppress:
//	      phone_number: 'user.phone_private'
//	    # Go funcs registered with Build
//	    funcs:
//	      email: LowerEmail
//	  - name: Summary
//	    parents: [User]
//	    fields: [name, email]
//
// Leaving out fields, alias or aux inherits them from the first parent that
// declares them. An empty list declares none.
//
// # Expressions
//
// Computed and suppress values are expr-lang expressions. They can read:
//
//   - the alias name and o: the wrapped object
//   - each aux slot name: the aux object passed at construction
//   - field("name"): another field of the same entity
//   - attr(obj, "name"): a lookup with the same rules entities use to proxy
//
// A suppress expression that evaluates to false falls through to the other
// definition of the field, or to the parents and the wrapped object when
// there is none.
//
// # Checking
//
// Lint reports every problem in a file as diagnostics. Build stops at the
// first one and returns the same errors entity.Define would.
package decl
