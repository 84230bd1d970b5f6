package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"first_name", "firstname"},
		{"FirstName", "firstname"},
		{"firstName", "firstname"},
		{"first-name", "firstname"},
		{"FIRST_NAME", "firstname"},
		{"a_value", "avalue"},
		{"AValue", "avalue"},
		{"a_property", "aproperty"},
		{"AProperty", "aproperty"},
		{"ID", "id"},
		{"id", "id"},
		{"XMLParser", "xmlparser"},
		{"user.email", "useremail"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestSameIdent(t *testing.T) {
	assert.True(t, SameIdent("phone_number", "PhoneNumber"))
	assert.True(t, SameIdent("id", "ID"))
	assert.False(t, SameIdent("phone_number", "PhoneNumberPrivate"))
}

func TestNormalizeIdentWithSuffixStrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"customer_id", "customer"},
		{"CustomerID", "customer"},
		{"created_at", "created"},
		{"item_ids", "item"},
		{"birthday_utc", "birthday"},
		// a bare suffix is left alone
		{"id", "id"},
		{"at", "at"},
		{"name", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdentWithSuffixStrip(tt.input))
		})
	}
}

func TestNormalizeIdent_MatchesProxyLookups(t *testing.T) {
	// entity fields are matched against Go names through NormalizeIdent
	pairs := [][2]string{
		{"a_value", "AValue"},
		{"placed_at", "PlacedAt"},
		{"customer_id", "CustomerID"},
		{"is_active", "IsActive"},
	}

	for _, p := range pairs {
		assert.True(t, SameIdent(p[0], p[1]), p[0])
	}
}
