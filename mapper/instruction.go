package mapper

import (
	"slices"

	"madmapper/bucket"
)

// Instruction describes how one destination field is produced.
//
// The set of instructions is closed: a value is either a FieldAlias or a
// Strategy.
type Instruction interface {
	instruction()
}

// FieldAlias copies the named field of the current context verbatim.
// A missing field resolves to nil.
type FieldAlias string

// Alias returns a FieldAlias for name.
func Alias(name string) FieldAlias {
	return FieldAlias(name)
}

func (FieldAlias) instruction() {}

// Strategy computes a destination value.
//
// current is the record being mapped, h re-enters the engine that invoked the
// strategy, and source is the broader context: the sequence or bucket current
// was drawn from, or nil at the top level. The returned value is used
// verbatim; a returned error aborts the mapping and reaches the caller
// unchanged.
type Strategy func(current any, h Handles, source []any) (any, error)

func (Strategy) instruction() {}

// Buckets is the store a Grouping fills during Group.
type Buckets = bucket.Store[any, any]

// Grouping places current into one or more buckets. It is called once per
// source item, in order, with the same store. Keys taken from data should go
// through BucketKey first.
type Grouping func(buckets *Buckets, current any) error

// Reduction tells Group how to turn buckets into a result. It is either a
// *Tree (one record per bucket) or an Aggregate (one value for all buckets).
type Reduction interface {
	reduction()
}

// Aggregate computes a single value from every bucket of a Group call.
// source is the sequence that was grouped.
type Aggregate func(buckets *Buckets, h Handles, source []any) (any, error)

func (Aggregate) reduction() {}

// ObjectFunc re-enters Mapper.Object.
type ObjectFunc func(current any, tree *Tree, source []any) (*Record, error)

// ArrayFunc re-enters Mapper.Array.
type ArrayFunc func(source []any, tree *Tree) ([]any, error)

// GroupFunc re-enters Mapper.Group.
type GroupFunc func(source []any, grouping Grouping, reduction Reduction) (any, error)

// Handles are the engine operations handed to every Strategy and Aggregate.
// They are bound to the Mapper that made the call, so strategies never hold
// an engine reference of their own and can be tested with stubs.
type Handles struct {
	Object ObjectFunc
	Array  ArrayFunc
	Group  GroupFunc
}

// Field binds a destination name to an instruction.
type Field struct {
	Name        string
	Instruction Instruction
}

// Bind returns a Field for name and ins.
func Bind(name string, ins Instruction) Field {
	return Field{Name: name, Instruction: ins}
}

// Tree is an ordered set of destination fields. Names are unique: setting a
// name twice replaces its instruction and keeps its first position.
//
// A nil *Tree behaves like an empty one.
type Tree struct {
	fields []Field
	index  map[string]int
}

// NewTree builds a Tree from fields in order.
func NewTree(fields ...Field) *Tree {
	t := &Tree{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		t.Set(f.Name, f.Instruction)
	}

	return t
}

func (*Tree) reduction() {}

// Set binds name to ins and returns the tree for chaining.
func (t *Tree) Set(name string, ins Instruction) *Tree {
	if t.index == nil {
		t.index = make(map[string]int)
	}

	if i, ok := t.index[name]; ok {
		t.fields[i].Instruction = ins
		return t
	}

	t.index[name] = len(t.fields)
	t.fields = append(t.fields, Field{Name: name, Instruction: ins})

	return t
}

// Get returns the instruction bound to name.
func (t *Tree) Get(name string) (Instruction, bool) {
	if t == nil {
		return nil, false
	}

	i, ok := t.index[name]
	if !ok {
		return nil, false
	}

	return t.fields[i].Instruction, true
}

// Fields returns a copy of the fields in declared order.
func (t *Tree) Fields() []Field {
	if t == nil {
		return nil
	}

	return slices.Clone(t.fields)
}

// Names returns the destination names in declared order.
func (t *Tree) Names() []string {
	if t == nil {
		return nil
	}

	names := make([]string, 0, len(t.fields))
	for _, f := range t.fields {
		names = append(names, f.Name)
	}

	return names
}

// Len returns the number of fields.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}

	return len(t.fields)
}
