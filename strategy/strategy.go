package strategy

import (
	"fmt"
	"strings"

	"madmapper/mapper"
)

// Func adapts a function of the current context to a Strategy.
func Func(fn func(current any) (any, error)) mapper.Strategy {
	return func(current any, _ mapper.Handles, _ []any) (any, error) {
		return fn(current)
	}
}

// Const always resolves to v.
func Const(v any) mapper.Strategy {
	return func(any, mapper.Handles, []any) (any, error) {
		return v, nil
	}
}

// At runs s with the value found at path as its current context.
// An empty path leaves the context unchanged.
func At(path string, s mapper.Strategy) mapper.Strategy {
	if path == "" {
		return s
	}

	walk := walker(path)

	return func(current any, h mapper.Handles, source []any) (any, error) {
		target, err := walk(current)
		if err != nil {
			return nil, err
		}

		return s(target, h, source)
	}
}

// Join concatenates the string form of every field with sep.
// Missing fields contribute an empty string.
func Join(sep string, fields ...string) mapper.Strategy {
	walks := make([]func(any) (any, error), 0, len(fields))
	for _, f := range fields {
		walks = append(walks, walker(f))
	}

	return func(current any, _ mapper.Handles, _ []any) (any, error) {
		parts := make([]string, 0, len(walks))

		for _, walk := range walks {
			v, err := walk(current)
			if err != nil {
				return nil, err
			}

			if v == nil {
				parts = append(parts, "")
				continue
			}

			parts = append(parts, fmt.Sprint(v))
		}

		return strings.Join(parts, sep), nil
	}
}

// Object maps the record at from (or the current record when from is empty)
// with tree, passing the broader context through.
func Object(from string, tree *mapper.Tree) mapper.Strategy {
	walk := walker(from)

	return func(current any, h mapper.Handles, source []any) (any, error) {
		target, err := walk(current)
		if err != nil {
			return nil, err
		}

		return h.Object(target, tree, source)
	}
}

// Array maps the sequence at from with tree. With an empty from it maps the
// broader context: the sibling sequence or the bucket of the current record.
func Array(from string, tree *mapper.Tree) mapper.Strategy {
	seq := sequence(from)

	return func(current any, h mapper.Handles, source []any) (any, error) {
		items, err := seq(current, source)
		if err != nil {
			return nil, err
		}

		return h.Array(items, tree)
	}
}

// Group groups the sequence at from (the broader context when from is empty)
// and reduces it.
func Group(from string, grouping mapper.Grouping, reduction mapper.Reduction) mapper.Strategy {
	seq := sequence(from)

	return func(current any, h mapper.Handles, source []any) (any, error) {
		items, err := seq(current, source)
		if err != nil {
			return nil, err
		}

		return h.Group(items, grouping, reduction)
	}
}

// walker resolves path against a context. An empty path is the identity.
func walker(path string) func(any) (any, error) {
	if path == "" {
		return func(current any) (any, error) {
			return current, nil
		}
	}

	fp, err := mapper.ParsePath(path)

	return func(current any) (any, error) {
		if err != nil {
			return nil, err
		}

		return fp.Walk(current), nil
	}
}

func sequence(from string) func(current any, source []any) ([]any, error) {
	if from == "" {
		return func(_ any, source []any) ([]any, error) {
			return source, nil
		}
	}

	walk := walker(from)

	return func(current any, _ []any) ([]any, error) {
		v, err := walk(current)
		if err != nil {
			return nil, err
		}

		return mapper.Items(v), nil
	}
}
