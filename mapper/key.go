package mapper

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// CompositeKey stands in for a bucket key that cannot be a map key, such as
// a record or a sequence. It holds the value's JSON form, so equal records
// share a bucket.
type CompositeKey string

// BucketKey returns a form of v that can be added to Buckets. Comparable
// values are returned as is. Records, maps, slices and values holding them
// become a CompositeKey.
func BucketKey(v any) any {
	switch v.(type) {
	case nil:
		return nil
	case *Record:
		return composite(v)
	}

	if reflect.ValueOf(v).Comparable() {
		return v
	}

	return composite(v)
}

func composite(v any) CompositeKey {
	data, err := json.Marshal(v)
	if err != nil {
		// fmt prints maps with sorted keys
		return CompositeKey(fmt.Sprintf("%v", v))
	}

	return CompositeKey(data)
}
