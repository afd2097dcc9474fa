package mapper

import (
	"reflect"
	"strings"
)

// Lookup returns the field name of a record-like context.
//
// Supported contexts are map[string]any, *Record, any other map with string
// keys, and structs or pointers to structs (exported field name first, then
// the json tag). Anything else, including nil, has no fields and yields nil.
func Lookup(current any, name string) any {
	switch c := current.(type) {
	case nil:
		return nil
	case map[string]any:
		return c[name]
	case *Record:
		v, _ := c.Get(name)
		return v
	}

	rv := indirect(reflect.ValueOf(current))
	if !rv.IsValid() {
		return nil
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}

		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil
		}

		return v.Interface()

	case reflect.Struct:
		return structField(rv, name)

	default:
		return nil
	}
}

// Items converts a sequence value to []any. Non-sequences yield nil.
func Items(v any) []any {
	switch s := v.(type) {
	case nil:
		return nil
	case []any:
		return s
	case []*Record:
		out := make([]any, len(s))
		for i, r := range s {
			out[i] = r
		}

		return out
	}

	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}

		rv = rv.Elem()
	}

	return rv
}

// structField tries the exported field name, then the json tag name.
func structField(rv reflect.Value, name string) any {
	rt := rv.Type()

	if sf, ok := rt.FieldByName(name); ok && sf.IsExported() {
		v, err := rv.FieldByIndexErr(sf.Index)
		if err != nil {
			return nil
		}

		return v.Interface()
	}

	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		if jsonTagName(sf) == name {
			return rv.Field(i).Interface()
		}
	}

	return nil
}

func jsonTagName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}

	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}

	return tag
}
