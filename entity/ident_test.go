package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLegalIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		legal bool
	}{
		{"foobar", true},
		{"_private", true},
		{"Field2", true},
		{"a", true},
		{"", false},
		{"2fast", false},
		{"first-name", false},
		{"$$$ dfkj dfjds", false},
		{"has space", false},
		{"func", false},
		{"range", false},
		{"héllo", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.legal, IsLegalIdentifier(tt.name))
		})
	}
}

func TestIsReserved(t *testing.T) {
	for _, name := range []string{BootstrapAlias, BootstrapFields, BootstrapWrapped, BootstrapAux} {
		assert.True(t, IsReserved(name), name)
	}

	assert.False(t, IsReserved("_FIELDS"))
	assert.False(t, IsReserved("o"))
}

func TestIsMangled(t *testing.T) {
	assert.True(t, IsMangled("__dunder__"))
	assert.True(t, IsMangled("__x"))
	assert.False(t, IsMangled("_x"))
	assert.False(t, IsMangled("x__"))
}
