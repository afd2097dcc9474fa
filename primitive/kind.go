package primitive

import (
	"reflect"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindPrimitiveEnum // named type over any integer, float, boolean or string

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) IsNumber() bool {
	return k.IsInteger() || k.IsFloat()
}

func (k KindEnum) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

var exactKinds = map[reflect.Type]KindEnum{
	reflect.TypeFor[int]():     KindInt,
	reflect.TypeFor[int8]():    KindInt8,
	reflect.TypeFor[int16]():   KindInt16,
	reflect.TypeFor[int32]():   KindInt32,
	reflect.TypeFor[int64]():   KindInt64,
	reflect.TypeFor[uint]():    KindUint,
	reflect.TypeFor[uint8]():   KindUint8,
	reflect.TypeFor[uint16]():  KindUint16,
	reflect.TypeFor[uint32]():  KindUint32,
	reflect.TypeFor[uint64]():  KindUint64,
	reflect.TypeFor[float32](): KindFloat32,
	reflect.TypeFor[float64](): KindFloat64,
	reflect.TypeFor[bool]():    KindBool,
	reflect.TypeFor[string]():  KindString,
}

// FromReflectType classifies a type. Predeclared scalar types map to their own
// kind, named scalar types (json.Number, enums) to KindPrimitiveEnum and
// everything else to the zero KindEnum.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	if k, ok := exactKinds[rtype]; ok {
		return k
	}

	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Bool, reflect.String:
		return KindPrimitiveEnum
	}
}

// Of classifies the dynamic type of v.
func Of(v any) KindEnum {
	return FromReflectType(reflect.TypeOf(v))
}
