package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var operators = []string{"path", "strategy", "const", "object", "array", "group", "sum", "avg", "min", "max", "count", "collect"}

func TestRankNames(t *testing.T) {
	ranked := RankNames("grup", operators)
	require.Len(t, ranked, len(operators))

	assert.Equal(t, "group", ranked[0].Name)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRankNames_TiesAreAlphabetical(t *testing.T) {
	ranked := RankNames("zzz", []string{"min", "max", "avg"})
	require.Len(t, ranked, 3)

	assert.Equal(t, []string{"avg", "max", "min"}, []string{ranked[0].Name, ranked[1].Name, ranked[2].Name})
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name   string
		target string
		limit  int
		want   []string
	}{
		{"typo", "stratgy", 3, []string{"strategy"}},
		{"case and separators", "Col_Lect", 3, []string{"collect", "object"}},
		{"nothing close", "zzzzzzzz", 3, []string{}},
		{"limit", "mx", 1, []string{"max"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.target, operators, tt.limit))
		})
	}
}

func TestCandidateList_Helpers(t *testing.T) {
	var empty CandidateList
	assert.Empty(t, empty.Top(3))

	list := CandidateList{{Name: "a", Score: 0.9}, {Name: "b", Score: 0.4}}
	assert.Len(t, list.Top(1), 1)
	assert.Len(t, list.Top(-1), 2)
	assert.Len(t, list.AboveThreshold(0.5), 1)
}
