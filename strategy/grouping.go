package strategy

import (
	"madmapper/mapper"
)

// By groups items by the value found at path. Items without the value share
// the nil bucket; record and sequence values are keyed by mapper.BucketKey.
func By(path string) mapper.Grouping {
	walk := walker(path)

	return func(buckets *mapper.Buckets, current any) error {
		key, err := walk(current)
		if err != nil {
			return err
		}

		buckets.Add(mapper.BucketKey(key), current)

		return nil
	}
}

// ByKey groups items by a computed key, passed through mapper.BucketKey.
func ByKey(key func(current any) (any, error)) mapper.Grouping {
	return func(buckets *mapper.Buckets, current any) error {
		k, err := key(current)
		if err != nil {
			return err
		}

		buckets.Add(mapper.BucketKey(k), current)

		return nil
	}
}
