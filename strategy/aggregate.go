package strategy

import (
	"errors"
	"fmt"

	"madmapper/mapper"
	"madmapper/primitive"
)

// ErrKeyCollision is returned by BucketSizes when two group keys share a
// string form.
var ErrKeyCollision = errors.New("group keys collide")

// Sum adds the numeric values of field across the broader context.
// Missing values are skipped; an empty context sums to 0.
func Sum(field string) mapper.Strategy {
	return numeric(field, func(values []float64) any {
		total := 0.0
		for _, v := range values {
			total += v
		}

		return total
	})
}

// Average is the arithmetic mean of the present values of field across the
// broader context, or nil when there are none.
func Average(field string) mapper.Strategy {
	return numeric(field, func(values []float64) any {
		if len(values) == 0 {
			return nil
		}

		total := 0.0
		for _, v := range values {
			total += v
		}

		return total / float64(len(values))
	})
}

// Min is the smallest value of field across the broader context, or nil.
func Min(field string) mapper.Strategy {
	return numeric(field, func(values []float64) any {
		if len(values) == 0 {
			return nil
		}

		lowest := values[0]
		for _, v := range values[1:] {
			lowest = min(lowest, v)
		}

		return lowest
	})
}

// Max is the largest value of field across the broader context, or nil.
func Max(field string) mapper.Strategy {
	return numeric(field, func(values []float64) any {
		if len(values) == 0 {
			return nil
		}

		highest := values[0]
		for _, v := range values[1:] {
			highest = max(highest, v)
		}

		return highest
	})
}

// Count is the size of the broader context.
func Count() mapper.Strategy {
	return func(_ any, _ mapper.Handles, source []any) (any, error) {
		return len(source), nil
	}
}

// Collect lists the value of field for every item of the broader context,
// missing values included as nil.
func Collect(field string) mapper.Strategy {
	walk := walker(field)

	return func(_ any, _ mapper.Handles, source []any) (any, error) {
		values := make([]any, 0, len(source))

		for _, item := range source {
			v, err := walk(item)
			if err != nil {
				return nil, err
			}

			values = append(values, v)
		}

		return values, nil
	}
}

// CountBuckets is a group summary: the number of distinct keys.
func CountBuckets() mapper.Aggregate {
	return func(buckets *mapper.Buckets, _ mapper.Handles, _ []any) (any, error) {
		return buckets.Len(), nil
	}
}

// BucketKeys is a group summary: the distinct keys in first-seen order.
func BucketKeys() mapper.Aggregate {
	return func(buckets *mapper.Buckets, _ mapper.Handles, _ []any) (any, error) {
		return buckets.Keys(), nil
	}
}

// BucketSizes is a group summary: a Record from each key's string form to
// the number of items under it. Distinct keys with the same string form,
// such as 1 and "1", fail with ErrKeyCollision.
func BucketSizes() mapper.Aggregate {
	return func(buckets *mapper.Buckets, _ mapper.Handles, _ []any) (any, error) {
		rec := mapper.NewRecord(buckets.Len())
		owners := make(map[string]any, buckets.Len())

		for key, items := range buckets.All() {
			name := fmt.Sprint(key)
			if prev, taken := owners[name]; taken {
				return nil, fmt.Errorf("%w: %#v and %#v both print as %q", ErrKeyCollision, prev, key, name)
			}

			owners[name] = key
			rec.Set(name, len(items))
		}

		return rec, nil
	}
}

func numeric(field string, reduce func([]float64) any) mapper.Strategy {
	walk := walker(field)

	return func(_ any, _ mapper.Handles, source []any) (any, error) {
		values := make([]float64, 0, len(source))

		for _, item := range source {
			v, err := walk(item)
			if err != nil {
				return nil, err
			}

			if v == nil {
				continue
			}

			f, err := primitive.ToFloat64(v)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", field, err)
			}

			values = append(values, f)
		}

		return reduce(values), nil
	}
}
