package mapper

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMapper_ConcurrentUse(t *testing.T) {
	source := make([]any, 0, 50)
	for i := range 50 {
		source = append(source, map[string]any{"K": i % 7, "N": i})
	}

	tree := NewTree().
		Set("k", Alias("K")).
		Set("size", Strategy(bucketSize)).
		Set("items", Strategy(func(_ any, h Handles, bucket []any) (any, error) {
			return h.Array(bucket, NewTree().Set("n", Alias("N")))
		}))

	m := New()

	want, err := m.Group(source, byField("K"), tree)
	require.NoError(t, err)

	results := make([]string, 16)

	g, ctx := errgroup.WithContext(context.Background())
	for i := range results {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			out, err := m.Group(source, byField("K"), tree)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}

			data, err := json.Marshal(out)
			if err != nil {
				return err
			}

			results[i] = string(data)

			return nil
		})
	}

	require.NoError(t, g.Wait())

	for _, got := range results {
		assert.Equal(t, mustJSON(t, want), got)
	}
}
