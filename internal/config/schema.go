package config

import (
	"slices"

	"madmapper/internal/common"
)

// Document is the root of an instruction file.
type Document struct {
	// Version is the schema version; defaults to "1".
	Version string `yaml:"version"`
	// Entry selects the top-level operation.
	Entry EntryKind `yaml:"entry,omitempty"`
	// GroupBy is the grouping path for entry: group.
	GroupBy string `yaml:"group_by,omitempty"`
	// Aggregate names a group summary used instead of Instructions.
	Aggregate string `yaml:"aggregate,omitempty"`
	// Instructions is the top-level instruction tree.
	Instructions Instructions `yaml:"instructions,omitempty"`
}

// EntryKind is the top-level operation of a document.
type EntryKind string

const (
	EntryObject EntryKind = "object"
	EntryArray  EntryKind = "array"
	EntryGroup  EntryKind = "group"
)

// EntryKinds lists the valid entry kinds.
var EntryKinds = []string{string(EntryObject), string(EntryArray), string(EntryGroup)}

// Valid reports whether k is a known entry kind.
func (k EntryKind) Valid() bool {
	return slices.Contains(EntryKinds, string(k))
}

// Instructions is an ordered instruction tree.
type Instructions []Entry

// Entry binds a destination field to its spec.
type Entry struct {
	Name string
	Spec Spec
}

// Names returns the destination field names in order.
func (ins Instructions) Names() []string {
	names := make([]string, 0, len(ins))
	for _, e := range ins {
		names = append(names, e.Name)
	}

	return names
}

// Get returns the spec of a destination field.
func (ins Instructions) Get(name string) (Spec, bool) {
	for _, e := range ins {
		if e.Name == name {
			return e.Spec, true
		}
	}

	return Spec{}, false
}

// IsEmpty returns true if there are no instructions.
func (ins Instructions) IsEmpty() bool {
	return common.IsEmpty(ins)
}

// Spec describes how one destination field is produced.
type Spec struct {
	Kind SpecKind

	// Field is the alias name for KindAlias, the path for KindPath, the
	// input path of a named strategy, or the field an aggregate reads.
	Field string
	// Fields are the paths concatenated by KindJoin.
	Fields []string
	// Sep separates joined fields; defaults to a single space.
	Sep string
	// Strategy is the registry name for KindStrategy.
	Strategy string
	// Const is the literal value for KindConst.
	Const any

	// From is the path of the record or sequence that object, array and
	// group work on. Empty means the current record (object) or the broader
	// context (array, group).
	From string
	// By is the grouping path for KindGroup.
	By string
	// Aggregate names a group summary used instead of Instructions.
	Aggregate string
	// Instructions is the nested tree of object, array and group.
	Instructions Instructions

	// Unknown holds mapping keys that are neither operators nor modifiers.
	Unknown []string
}

// SpecKind identifies the operator of a Spec.
type SpecKind int

const (
	KindInvalid SpecKind = iota
	KindAlias
	KindPath
	KindStrategy
	KindConst
	KindJoin
	KindObject
	KindArray
	KindGroup
	KindSum
	KindAvg
	KindMin
	KindMax
	KindCount
	KindCollect
)

// operators maps operator keys to kinds. Aliases have no key.
var operators = map[string]SpecKind{
	"path":     KindPath,
	"strategy": KindStrategy,
	"const":    KindConst,
	"join":     KindJoin,
	"object":   KindObject,
	"array":    KindArray,
	"group":    KindGroup,
	"sum":      KindSum,
	"avg":      KindAvg,
	"min":      KindMin,
	"max":      KindMax,
	"count":    KindCount,
	"collect":  KindCollect,
}

// String returns the operator key of the kind.
func (k SpecKind) String() string {
	switch k {
	case KindAlias:
		return "alias"
	case KindInvalid:
		return "invalid"
	}

	for name, kind := range operators {
		if kind == k {
			return name
		}
	}

	return common.UnknownStr
}

// IsAggregate reports whether the kind reads the broader context.
func (k SpecKind) IsAggregate() bool {
	switch k {
	case KindSum, KindAvg, KindMin, KindMax, KindCount, KindCollect:
		return true
	default:
		return false
	}
}

// HasTree reports whether the kind nests an instruction tree.
func (k SpecKind) HasTree() bool {
	return k == KindObject || k == KindArray || k == KindGroup
}

// OperatorNames returns every operator key, sorted.
func OperatorNames() []string {
	names := make([]string, 0, len(operators))
	for name := range operators {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
