package primitive

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var ErrNotNumeric = errors.New("value is not numeric")

// ToFloat64 converts a numeric value to float64. Integers, floats, named
// numeric types and strings holding a decimal number (including json.Number)
// are accepted. Booleans are not numbers.
func ToFloat64(v any) (float64, error) {
	rv := reflect.ValueOf(v)
	kind := Of(v)

	switch {
	case kind.IsFloat():
		return rv.Float(), nil
	case kind.IsSigned():
		return float64(rv.Int()), nil
	case kind.IsUnsigned():
		return float64(rv.Uint()), nil
	case kind == KindString:
		return parseFloat(rv.String())
	case kind == KindPrimitiveEnum:
		return enumToFloat64(rv)
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
}

// IsNumeric reports whether ToFloat64 would accept v.
func IsNumeric(v any) bool {
	_, err := ToFloat64(v)
	return err == nil
}

func enumToFloat64(rv reflect.Value) (float64, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.String:
		return parseFloat(rv.String())
	default:
		return 0, fmt.Errorf("%w: %s", ErrNotNumeric, rv.Type())
	}
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}

	return f, nil
}
