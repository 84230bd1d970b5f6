package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"name", "name", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"nmae", "name", 2},
		{"kitten", "sitting", 3},
		{"first_name", "last_name", 3},
		{"Hello", "hello", 1},
		// runes, not bytes
		{"naïve", "naive", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "distance must be symmetric")
		})
	}
}

func TestLevenshteinNormalized(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"", "", 1.0},
		{"email", "email", 1.0},
		{"abc", "xyz", 0.0},
		{"kitten", "sitting", 1.0 - 3.0/7.0},
		{"abc", "ab", 1.0 - 1.0/3.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.expected, LevenshteinNormalized(tt.a, tt.b), 0.001)
		})
	}
}

func BenchmarkLevenshtein(b *testing.B) {
	for b.Loop() {
		Levenshtein("phone_number_private", "phone_number")
	}
}
