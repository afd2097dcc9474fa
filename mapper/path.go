package mapper

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// PathSegment is one step of a FieldPath.
type PathSegment struct {
	Name     string
	Index    int
	HasIndex bool // Name[Index]
}

// FieldPath is a parsed dotted path such as "NAME.FIRST" or "HOLDINGS[0].ISIN".
type FieldPath struct {
	Segments []PathSegment
}

// ParsePath parses a dotted field path.
// Supports: "Field", "Nested.Field", "Items[2]", "Items.2", "Items[2].Name",
// "Grid[1][0]". Each extra index becomes its own unnamed segment.
func ParsePath(path string) (FieldPath, error) {
	if path == "" {
		return FieldPath{}, ErrEmptyPath
	}

	var segments []PathSegment

	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return FieldPath{}, fmt.Errorf("%w %q: empty segment", ErrInvalidPath, path)
		}

		name, indexes, err := splitIndexes(part)
		if err != nil {
			return FieldPath{}, fmt.Errorf("%w %q: %w", ErrInvalidPath, path, err)
		}

		if len(indexes) == 0 {
			segments = append(segments, PathSegment{Name: name})
			continue
		}

		segments = append(segments, PathSegment{Name: name, Index: indexes[0], HasIndex: true})
		for _, idx := range indexes[1:] {
			segments = append(segments, PathSegment{Index: idx, HasIndex: true})
		}
	}

	return FieldPath{Segments: segments}, nil
}

// splitIndexes splits "Name[1][2]" into "Name" and [1 2].
func splitIndexes(part string) (string, []int, error) {
	var indexes []int

	rest := part
	for strings.HasSuffix(rest, "]") {
		open := strings.LastIndexByte(rest, '[')
		if open < 0 {
			return "", nil, fmt.Errorf("unbalanced brackets in %q", part)
		}

		idx, err := strconv.Atoi(rest[open+1 : len(rest)-1])
		if err != nil || idx < 0 {
			return "", nil, fmt.Errorf("bad index in %q", part)
		}

		indexes = append(indexes, idx)
		rest = rest[:open]
	}

	if strings.ContainsAny(rest, "[]") {
		return "", nil, fmt.Errorf("unbalanced brackets in %q", part)
	}

	slices.Reverse(indexes)

	return rest, indexes, nil
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(path string) FieldPath {
	fp, err := ParsePath(path)
	if err != nil {
		panic(err)
	}

	return fp
}

// Walk follows the path from current. A segment that cannot be followed
// yields nil; Walk never fails.
func (p FieldPath) Walk(current any) any {
	for _, seg := range p.Segments {
		if current == nil {
			return nil
		}

		if seg.Name != "" {
			current = step(current, seg.Name)
		}

		if seg.HasIndex {
			current = index(current, seg.Index)
		}
	}

	return current
}

// String returns the path in dotted form.
func (p FieldPath) String() string {
	var b strings.Builder

	for i, seg := range p.Segments {
		if i > 0 && (seg.Name != "" || !seg.HasIndex) {
			b.WriteByte('.')
		}

		b.WriteString(seg.Name)

		if seg.HasIndex {
			b.WriteString("[" + strconv.Itoa(seg.Index) + "]")
		}
	}

	return b.String()
}

// Path returns a Strategy that resolves a dotted path against the current
// context. A malformed path is reported when the strategy runs.
func Path(path string) Strategy {
	fp, err := ParsePath(path)

	return func(current any, _ Handles, _ []any) (any, error) {
		if err != nil {
			return nil, err
		}

		return fp.Walk(current), nil
	}
}

// step resolves one named segment; numeric names index into sequences.
func step(current any, name string) any {
	if seq := Items(current); seq != nil {
		if i, err := strconv.Atoi(name); err == nil {
			return index(seq, i)
		}

		return nil
	}

	return Lookup(current, name)
}

func index(current any, i int) any {
	seq := Items(current)
	if i < 0 || i >= len(seq) {
		return nil
	}

	return seq[i]
}
