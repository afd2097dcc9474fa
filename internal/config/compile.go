package config

import (
	"errors"
	"fmt"

	"madmapper/mapper"
	"madmapper/strategy"
)

var (
	// ErrInvalidDocument is returned by Compile for documents with errors.
	ErrInvalidDocument = errors.New("invalid instruction document")
	// ErrNotSequence is returned by Program.Run when an array or group entry
	// receives something other than a sequence.
	ErrNotSequence = errors.New("input is not a sequence")
)

// defaultSep joins fields when a join has no sep.
const defaultSep = " "

// Program is a compiled instruction document.
type Program struct {
	Entry     EntryKind
	tree      *mapper.Tree
	grouping  mapper.Grouping
	reduction mapper.Reduction
}

// Compile validates doc and builds the mapper values it describes.
func Compile(doc *Document, registry *strategy.Registry) (*Program, error) {
	diags := Validate(doc, registry)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, diags.Error())
	}

	c := compiler{registry: registry}

	prog := &Program{
		Entry: doc.Entry,
		tree:  c.tree(doc.Instructions),
	}

	if doc.Entry == EntryGroup {
		prog.grouping = strategy.By(doc.GroupBy)
		prog.reduction = c.reduction(doc.Aggregate, prog.tree)
	}

	return prog, nil
}

// Tree returns the compiled top-level instruction tree.
func (p *Program) Tree() *mapper.Tree {
	return p.tree
}

// Run maps input with m according to the document's entry kind.
//
// An object entry returns a *mapper.Record, an array entry a []any of
// records, and a group entry either a []any of records or the aggregate's
// value.
func (p *Program) Run(m *mapper.Mapper, input any) (any, error) {
	switch p.Entry {
	case EntryArray:
		items, err := sequence(input)
		if err != nil {
			return nil, err
		}

		return m.Array(items, p.tree)

	case EntryGroup:
		items, err := sequence(input)
		if err != nil {
			return nil, err
		}

		return m.Group(items, p.grouping, p.reduction)

	default:
		return m.Object(input, p.tree, nil)
	}
}

func sequence(input any) ([]any, error) {
	items := mapper.Items(input)
	if items == nil && input != nil {
		return nil, fmt.Errorf("%w: got %T", ErrNotSequence, input)
	}

	return items, nil
}

type compiler struct {
	registry *strategy.Registry
}

func (c compiler) tree(ins Instructions) *mapper.Tree {
	tree := mapper.NewTree()
	for _, e := range ins {
		tree.Set(e.Name, c.instruction(e.Spec))
	}

	return tree
}

func (c compiler) reduction(aggregate string, tree *mapper.Tree) mapper.Reduction {
	if aggregate != "" {
		return c.registry.GetAggregate(aggregate).Aggregate
	}

	return tree
}

// instruction builds one instruction from a validated s.
func (c compiler) instruction(s Spec) mapper.Instruction {
	switch s.Kind {
	case KindAlias:
		return mapper.Alias(s.Field)
	case KindPath:
		return mapper.Path(s.Field)
	case KindStrategy:
		return strategy.At(s.Field, c.registry.Get(s.Strategy).Strategy)
	case KindConst:
		return strategy.Const(s.Const)
	case KindJoin:
		sep := s.Sep
		if sep == "" {
			sep = defaultSep
		}

		return strategy.Join(sep, s.Fields...)
	case KindObject:
		return strategy.Object(s.From, c.tree(s.Instructions))
	case KindArray:
		return strategy.Array(s.From, c.tree(s.Instructions))
	case KindGroup:
		tree := c.tree(s.Instructions)
		return strategy.Group(s.From, strategy.By(s.By), c.reduction(s.Aggregate, tree))
	case KindSum:
		return strategy.Sum(s.Field)
	case KindAvg:
		return strategy.Average(s.Field)
	case KindMin:
		return strategy.Min(s.Field)
	case KindMax:
		return strategy.Max(s.Field)
	case KindCount:
		return strategy.Count()
	case KindCollect:
		return strategy.Collect(s.Field)
	default:
		// unreachable after validation; resolves to ErrUnsupportedInstruction
		return nil
	}
}
