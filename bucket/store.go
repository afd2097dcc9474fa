package bucket

import (
	"iter"
	"slices"
)

// Entry is one key of a Store together with every item added under it.
type Entry[K comparable, V any] struct {
	Key   K
	Items []V
}

// Store is an insertion-ordered multimap. Keys are kept in the order they were
// first added and items within a key in the order they arrived.
//
// The zero value is ready to use.
type Store[K comparable, V any] struct {
	order []K
	items map[K][]V
}

// New creates an empty Store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		items: make(map[K][]V),
	}
}

// Add appends value to the sequence stored under key, creating the key if it
// has not been seen before.
func (s *Store[K, V]) Add(key K, value V) {
	if s.items == nil {
		s.items = make(map[K][]V)
	}

	seq, ok := s.items[key]
	if !ok {
		s.order = append(s.order, key)
	}

	s.items[key] = append(seq, value)
}

// Entries returns the (key, items) pairs in first-seen key order.
// Item slices are clipped: appending to them never writes into the store.
func (s *Store[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, len(s.order))
	for _, key := range s.order {
		entries = append(entries, Entry[K, V]{
			Key:   key,
			Items: slices.Clip(s.items[key]),
		})
	}

	return entries
}

// All iterates over keys and their items in first-seen key order.
func (s *Store[K, V]) All() iter.Seq2[K, []V] {
	return func(yield func(K, []V) bool) {
		for _, key := range s.order {
			if !yield(key, slices.Clip(s.items[key])) {
				return
			}
		}
	}
}

// Get returns the items stored under key.
func (s *Store[K, V]) Get(key K) ([]V, bool) {
	seq, ok := s.items[key]
	return slices.Clip(seq), ok
}

// Keys returns a copy of the keys in first-seen order.
func (s *Store[K, V]) Keys() []K {
	return slices.Clone(s.order)
}

// Len returns the number of distinct keys.
func (s *Store[K, V]) Len() int {
	return len(s.order)
}
