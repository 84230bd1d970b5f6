package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	tests := []struct {
		pkgPath  string
		expected string
	}{
		{"", ""},
		{"time", "time"},
		{"entity-projector/store", "store"},
		{"github.com/go-viper/mapstructure/v2", "mapstructure"},
		{"gopkg.in/yaml.v3", "yaml"},
		{"v2", "v2"},
	}

	for _, tt := range tests {
		t.Run(tt.pkgPath, func(t *testing.T) {
			assert.Equal(t, tt.expected, PkgAlias(tt.pkgPath))
		})
	}
}

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = First([]int(nil))
	assert.False(t, ok)
	assert.True(t, IsEmpty([]int{}))
}
