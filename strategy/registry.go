package strategy

import (
	"fmt"
	"slices"
	"strings"

	"madmapper/internal/match"
	"madmapper/mapper"
	"madmapper/primitive"
)

// Registry holds named strategies and group aggregates so that instruction
// files can refer to them by name.
type Registry struct {
	strategies map[string]*Definition
	aggregates map[string]*AggregateDefinition
}

// Definition is a named strategy.
type Definition struct {
	Name        string
	Description string
	Strategy    mapper.Strategy
}

// AggregateDefinition is a named group aggregate.
type AggregateDefinition struct {
	Name        string
	Description string
	Aggregate   mapper.Aggregate
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]*Definition),
		aggregates: make(map[string]*AggregateDefinition),
	}
}

// Builtins returns a registry holding the built-in strategies and aggregates.
func Builtins() *Registry {
	r := NewRegistry()

	r.Register("upper", "upper-cases the string form of the value", textual(strings.ToUpper))
	r.Register("lower", "lower-cases the string form of the value", textual(strings.ToLower))
	r.Register("trim", "trims surrounding white space", textual(strings.TrimSpace))
	r.Register("string", "string form of the value", textual(func(s string) string { return s }))
	r.Register("digits", "keeps only the digits of the value", textual(digits))
	r.Register("number", "parses the value as a number", Func(func(current any) (any, error) {
		if current == nil {
			return nil, nil
		}

		return primitive.ToFloat64(current)
	}))
	r.Register("count", "size of the broader context", Count())

	r.RegisterAggregate("count", "number of distinct group keys", CountBuckets())
	r.RegisterAggregate("keys", "distinct group keys in first-seen order", BucketKeys())
	r.RegisterAggregate("sizes", "number of items per group key", BucketSizes())

	return r
}

// Register adds or replaces a named strategy.
func (r *Registry) Register(name, description string, s mapper.Strategy) {
	r.strategies[name] = &Definition{
		Name:        name,
		Description: description,
		Strategy:    s,
	}
}

// RegisterAggregate adds or replaces a named aggregate.
func (r *Registry) RegisterAggregate(name, description string, a mapper.Aggregate) {
	r.aggregates[name] = &AggregateDefinition{
		Name:        name,
		Description: description,
		Aggregate:   a,
	}
}

// Get returns a strategy definition by name, or nil if not found.
func (r *Registry) Get(name string) *Definition {
	return r.strategies[name]
}

// GetAggregate returns an aggregate definition by name, or nil if not found.
func (r *Registry) GetAggregate(name string) *AggregateDefinition {
	return r.aggregates[name]
}

// Has returns true if a strategy with the given name exists.
func (r *Registry) Has(name string) bool {
	_, exists := r.strategies[name]
	return exists
}

// HasAggregate returns true if an aggregate with the given name exists.
func (r *Registry) HasAggregate(name string) bool {
	_, exists := r.aggregates[name]
	return exists
}

// Names returns all strategy names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// AggregateNames returns all aggregate names, sorted.
func (r *Registry) AggregateNames() []string {
	names := make([]string, 0, len(r.aggregates))
	for name := range r.aggregates {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Suggest returns registered strategy names close to an unknown one.
func (r *Registry) Suggest(name string) []string {
	return match.Suggest(name, r.Names(), 3)
}

// SuggestAggregate returns registered aggregate names close to an unknown one.
func (r *Registry) SuggestAggregate(name string) []string {
	return match.Suggest(name, r.AggregateNames(), 3)
}

// Merge copies every definition of other into r, replacing same-named ones.
func (r *Registry) Merge(other *Registry) {
	for name, def := range other.strategies {
		r.strategies[name] = def
	}

	for name, def := range other.aggregates {
		r.aggregates[name] = def
	}
}

// textual applies fn to the string form of the current value; nil stays nil.
func textual(fn func(string) string) mapper.Strategy {
	return Func(func(current any) (any, error) {
		if current == nil {
			return nil, nil
		}

		return fn(fmt.Sprint(current)), nil
	})
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, s)
}
