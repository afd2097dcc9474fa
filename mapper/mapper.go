package mapper

import (
	"go.uber.org/zap"

	"madmapper/bucket"
)

// Mapper runs instruction trees against source documents.
//
// A Mapper keeps no state between calls and may be used from several
// goroutines at once. The zero value is usable and does not log.
type Mapper struct {
	logger *zap.Logger
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Mapper) {
		m.logger = logger
	}
}

// New creates a Mapper.
func New(opts ...Option) *Mapper {
	m := &Mapper{}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Handles returns the engine operations bound to m.
func (m *Mapper) Handles() Handles {
	return Handles{
		Object: m.Object,
		Array:  m.Array,
		Group:  m.Group,
	}
}

// Object maps current into a new Record with one key per tree field, in tree
// order. source is passed to every strategy as the broader context and may
// be nil.
func (m *Mapper) Object(current any, tree *Tree, source []any) (*Record, error) {
	dst := NewRecord(tree.Len())
	if tree.Len() == 0 {
		return dst, nil
	}

	h := m.Handles()

	for _, f := range tree.fields {
		v, err := resolve(f, current, h, source)
		if err != nil {
			return nil, err
		}

		dst.Set(f.Name, v)
	}

	return dst, nil
}

// Array maps every item of source with Object, passing the whole of source
// as the broader context. The result has the same length and order.
func (m *Mapper) Array(source []any, tree *Tree) ([]any, error) {
	dst := make([]any, 0, len(source))

	for _, item := range source {
		rec, err := m.Object(item, tree, source)
		if err != nil {
			return nil, err
		}

		dst = append(dst, rec)
	}

	return dst, nil
}

// Group buckets source with grouping and then reduces the buckets.
//
// With a *Tree reduction the result is a []any holding one Record per bucket,
// in first-seen key order; each Record is built from the bucket's first item
// with the whole bucket as broader context. With an Aggregate reduction the
// aggregate's value is returned as is.
func (m *Mapper) Group(source []any, grouping Grouping, reduction Reduction) (any, error) {
	if grouping == nil {
		return nil, unsupported("grouping")
	}

	switch r := reduction.(type) {
	case *Tree:
	case Aggregate:
		if r == nil {
			return nil, unsupported("aggregate")
		}
	default:
		return nil, unsupported("reduction")
	}

	buckets := bucket.New[any, any]()
	for _, item := range source {
		err := grouping(buckets, item)
		if err != nil {
			return nil, err
		}
	}

	m.log().Debug("grouped source",
		zap.Int("items", len(source)),
		zap.Int("buckets", buckets.Len()))

	if agg, ok := reduction.(Aggregate); ok {
		return agg(buckets, m.Handles(), source)
	}

	tree, _ := reduction.(*Tree)
	dst := make([]any, 0, buckets.Len())

	for _, entry := range buckets.Entries() {
		rec, err := m.Object(entry.Items[0], tree, entry.Items)
		if err != nil {
			return nil, err
		}

		dst = append(dst, rec)
	}

	return dst, nil
}

func (m *Mapper) log() *zap.Logger {
	if m.logger == nil {
		return zap.NewNop()
	}

	return m.logger
}
