package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors. They are only returned while defining a Type or
// constructing an Entity.
var (
	ErrUnnamedEntity     = errors.New("entity type must have a name")
	ErrDuplicateEntity   = errors.New("entity type is already defined")
	ErrUnknownEntity     = errors.New("entity type is not defined")
	ErrNilParent         = errors.New("parent entity type is nil")
	ErrNilDefinition     = errors.New("field definition is nil")
	ErrAliasNotString    = errors.New("must be a string")
	ErrIllegalIdentifier = errors.New("must be a legal identifier")
	ErrReservedName      = errors.New("collides with a reserved attribute name")
	ErrAliasCollision    = errors.New("collides with the alias")
	ErrFieldCollision    = errors.New("collides with a field")
	ErrMangledName       = errors.New("cannot begin with double underscore")
	ErrDuplicateField    = errors.New("is declared more than once")
	ErrAuxNotSequence    = errors.New("aux objects must be a list")
	ErrUnexpectedAux     = errors.New("unexpected aux object")
	ErrMissingAux        = errors.New("missing aux object")

	// no order puts every type before its parents with parents in
	// declaration order
	ErrInconsistentHierarchy = errors.New("parents cannot be ordered consistently")
)

// Resolution errors. They are returned by reads and materializations of a
// constructed Entity.
var (
	ErrNoSuchField     = errors.New("no such field")
	ErrKeyNotPresent   = errors.New("key not present")
	ErrSuppressed      = errors.New("field is suppressed")
	ErrCannotFindValue = errors.New("cannot find a value")
	ErrNotInvocable    = errors.New("func value cannot be invoked without arguments")
	ErrMergeTarget     = errors.New("can only merge into an empty, non-nil map")
)

// Declaration kinds used by ConfigError.
const (
	KindEntity = "entity"
	KindAlias  = "alias"
	KindField  = "field"
	KindAux    = "aux object"
	KindParent = "parent"
)

// ConfigError reports an invalid entity declaration or construction call.
type ConfigError struct {
	Entity      string
	Kind        string
	Name        string
	Suggestions []string
	Err         error
}

func (e *ConfigError) Error() string {
	var msg string
	if e.Name == "" {
		msg = fmt.Sprintf("entity %s: %s: %v", e.Entity, e.Kind, e.Err)
	} else {
		msg = fmt.Sprintf("entity %s: %s %q %v", e.Entity, e.Kind, e.Name, e.Err)
	}

	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", quoteAll(e.Suggestions))
	}

	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FieldError reports a failure to read a single name on an entity.
type FieldError struct {
	Entity      string
	Field       string
	Suggestions []string
	Err         error
}

func (e *FieldError) Error() string {
	var msg string

	switch {
	case errors.Is(e.Err, ErrCannotFindValue):
		msg = fmt.Sprintf("cannot find a value for field %q in entity %s", e.Field, e.Entity)
	case errors.Is(e.Err, ErrKeyNotPresent):
		msg = fmt.Sprintf("key %q not present in entity %s", e.Field, e.Entity)
	default:
		msg = fmt.Sprintf("entity %s: field %q: %v", e.Entity, e.Field, e.Err)
	}

	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", quoteAll(e.Suggestions))
	}

	return msg
}

func (e *FieldError) Unwrap() error { return e.Err }

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}

	return strings.Join(quoted, " or ")
}
