package entity

import (
	"go/token"
	"regexp"
	"slices"
	"strings"
)

// Reserved bootstrap names. Reading one of them on an entity returns the
// entity's own bookkeeping instead of a field value.
const (
	BootstrapAlias   = "_ALIAS_"
	BootstrapFields  = "_FIELDS_"
	BootstrapWrapped = "_o"
	BootstrapAux     = "_AUX_OBJECTS_"
)

// ManglePrefix marks names that are private to the entity machinery.
const ManglePrefix = "__"

var (
	bootstrapNames = []string{BootstrapAlias, BootstrapFields, BootstrapWrapped, BootstrapAux}
	identifierRe   = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*$`)
)

// IsLegalIdentifier reports whether name is a bare identifier that is not a Go keyword.
func IsLegalIdentifier(name string) bool {
	return identifierRe.MatchString(name) && !token.IsKeyword(name)
}

// IsReserved reports whether name is one of the bootstrap names.
func IsReserved(name string) bool {
	return slices.Contains(bootstrapNames, name)
}

// IsMangled reports whether name starts with the private-name prefix.
func IsMangled(name string) bool {
	return strings.HasPrefix(name, ManglePrefix)
}
