package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankNames(t *testing.T) {
	known := []string{"name", "email", "phone_number", "birthday", "customer_id"}

	candidates := RankNames("phone_numbr", known)
	require.Len(t, candidates, len(known))
	assert.Equal(t, "phone_number", candidates.Best().Name)

	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Score, candidates[i].Score)
	}
}

func TestRankNames_SuffixStrip(t *testing.T) {
	candidates := RankNames("customer", []string{"customer_id", "costume"})
	assert.Equal(t, "customer_id", candidates.Best().Name)
	assert.InDelta(t, 1.0, candidates.Best().Score, 0.001)
}

func TestSuggest(t *testing.T) {
	fields := []string{"name", "email", "accomplishments", "birthday"}

	tests := []struct {
		requested string
		expected  []string
	}{
		{"nmae", []string{"name"}},
		{"emial", []string{"email"}},
		{"birth_day", []string{"birthday"}},
		{"zzz", nil},
		// exact names are not suggestions
		{"name", nil},
	}

	for _, tt := range tests {
		t.Run(tt.requested, func(t *testing.T) {
			assert.Equal(t, tt.expected, Suggest(tt.requested, fields))
		})
	}
}

func TestCandidateList_Top(t *testing.T) {
	candidates := CandidateList{{Name: "A", Score: 0.9}, {Name: "B", Score: 0.8}, {Name: "C", Score: 0.7}}

	assert.Len(t, candidates.Top(2), 2)
	assert.Len(t, candidates.Top(10), 3)
}
