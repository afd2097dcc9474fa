package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"sum", "sum"},
		{"CountBuckets", "countbuckets"},
		{"count_buckets", "countbuckets"},
		{"count-buckets", "countbuckets"},
		{"group by", "groupby"},
		{"NAME.FIRST", "namefirst"},
		{"ÜBER", "über"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIdent(tt.in))
		})
	}
}
