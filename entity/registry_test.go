package entity

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DefineAndGet(t *testing.T) {
	reg := NewRegistry()

	user, err := reg.Define(Definition{Name: "User", Fields: []string{"id"}, Alias: "user"})
	require.NoError(t, err)

	_, err = reg.Define(Definition{Name: "Summary", Parents: []*Type{user}})
	require.NoError(t, err)

	got, err := reg.Get("User")
	require.NoError(t, err)
	assert.Same(t, user, got)

	_, ok := reg.Lookup("Nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"User", "Summary"}, reg.Names())
}

func TestRegistry_Duplicate(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Define(Definition{Name: "User"})
	require.NoError(t, err)

	_, err = reg.Define(Definition{Name: "User"})
	assert.ErrorIs(t, err, ErrDuplicateEntity)
	assert.Equal(t, []string{"User"}, reg.Names())
}

func TestRegistry_InvalidDefinitionIsNotStored(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Define(Definition{Name: "Bad", Fields: []string{"__x"}})
	require.ErrorIs(t, err, ErrMangledName)

	_, ok := reg.Lookup("Bad")
	assert.False(t, ok)
}

func TestRegistry_GetSuggests(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Define(Definition{Name: "Customer"})
	require.NoError(t, err)

	_, err = reg.Get("Custmer")
	require.ErrorIs(t, err, ErrUnknownEntity)

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"Customer"}, ce.Suggestions)
}

func TestRegistry_LogsDefinitions(t *testing.T) {
	var buf bytes.Buffer

	reg := NewRegistry(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	_, err := reg.Define(Definition{Name: "User", Fields: []string{"id", "name"}})
	require.NoError(t, err)

	_, err = reg.Define(Definition{Name: "Bad", Fields: []string{BootstrapFields}})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"entity":"User"`)
	assert.Contains(t, out, `"fields":["id","name"]`)
	assert.Contains(t, out, `"message":"defined entity"`)
	assert.Contains(t, out, `"message":"rejected entity definition"`)
}
