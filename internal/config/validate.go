package config

import (
	"fmt"

	"madmapper/internal/diagnostic"
	"madmapper/internal/match"
	"madmapper/mapper"
	"madmapper/strategy"
)

// Validate checks a document against the given registry. It is a structural
// check only: it never looks at input data.
func Validate(doc *Document, registry *strategy.Registry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if doc == nil {
		res.AddError("document_is_nil", "instruction document is nil", "")
		return res
	}

	if registry == nil {
		res.AddError("registry_is_nil", "strategy registry is nil", "")
		return res
	}

	if doc.Version != "1" {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q", doc.Version), "")
	}

	v := validator{res: res, registry: registry}

	switch {
	case !doc.Entry.Valid():
		res.AddError("unknown_entry", fmt.Sprintf("unknown entry %q", doc.Entry), "",
			match.Suggest(string(doc.Entry), EntryKinds, 3)...)

	case doc.Entry == EntryGroup:
		v.grouping("", doc.GroupBy, doc.Aggregate, doc.Instructions)

	default:
		if doc.GroupBy != "" || doc.Aggregate != "" {
			res.AddWarning("ignored_group_keys",
				fmt.Sprintf("group_by and aggregate are ignored for entry %q", doc.Entry), "")
		}

		if doc.Instructions.IsEmpty() {
			res.AddWarning("empty_instructions", "no instructions: every record maps to an empty record", "")
		}
	}

	v.instructions("", doc.Instructions)

	return res
}

type validator struct {
	res      *diagnostic.Diagnostics
	registry *strategy.Registry
}

func (v validator) instructions(prefix string, ins Instructions) {
	for _, e := range ins {
		v.spec(join(prefix, e.Name), e.Spec)
	}
}

func (v validator) spec(at string, s Spec) {
	v.unknownKeys(at, s)

	switch s.Kind {
	case KindInvalid:
		if len(s.Unknown) == 0 {
			v.res.AddError("missing_operator", "mapping has no operator", at)
		}

	case KindAlias:
		if s.Field == "" {
			v.res.AddError("empty_alias", "field alias is empty", at)
		}

	case KindPath:
		v.path(at, "path", s.Field, true)

	case KindStrategy:
		if !v.registry.Has(s.Strategy) {
			v.res.AddError("unknown_strategy", fmt.Sprintf("unknown strategy %q", s.Strategy), at,
				v.registry.Suggest(s.Strategy)...)
		}

		v.path(at, "field", s.Field, false)

	case KindJoin:
		if len(s.Fields) == 0 {
			v.res.AddError("empty_join", "join needs at least one field", at)
		}

		for _, f := range s.Fields {
			v.path(at, "join", f, true)
		}

	case KindObject, KindArray:
		v.path(at, "from", s.From, false)

		if s.Instructions.IsEmpty() {
			v.res.AddWarning("empty_instructions", fmt.Sprintf("%s has no instructions", s.Kind), at)
		}

		v.instructions(at, s.Instructions)

	case KindGroup:
		v.path(at, "from", s.From, false)
		v.grouping(at, s.By, s.Aggregate, s.Instructions)
		v.instructions(at, s.Instructions)

	case KindSum, KindAvg, KindMin, KindMax, KindCollect:
		v.path(at, s.Kind.String(), s.Field, true)

	case KindConst, KindCount:
	}
}

// grouping checks the grouping path and the reduction of a group.
func (v validator) grouping(at, by, aggregate string, ins Instructions) {
	if by == "" {
		v.res.AddError("missing_group_by", "group needs a grouping path", at)
	} else {
		v.path(at, "group by", by, true)
	}

	switch {
	case aggregate != "" && !ins.IsEmpty():
		v.res.AddError("conflicting_reduction", "group takes either an aggregate or instructions, not both", at)

	case aggregate != "":
		if !v.registry.HasAggregate(aggregate) {
			v.res.AddError("unknown_aggregate", fmt.Sprintf("unknown aggregate %q", aggregate), at,
				v.registry.SuggestAggregate(aggregate)...)
		}

	case ins.IsEmpty():
		v.res.AddWarning("empty_instructions", "group has no instructions", at)
	}
}

func (v validator) path(at, what, path string, required bool) {
	if path == "" {
		if required {
			v.res.AddError("empty_path", what+" is empty", at)
		}

		return
	}

	_, err := mapper.ParsePath(path)
	if err != nil {
		v.res.AddError("invalid_path", fmt.Sprintf("%s: %v", what, err), at)
	}
}

func (v validator) unknownKeys(at string, s Spec) {
	known := OperatorNames()
	if s.Kind != KindInvalid {
		known = []string{keyField, keySep, keyFrom, keyInstructions, keyBy, keyAggregate}
	}

	for _, key := range s.Unknown {
		code, what := "unknown_key", "key"
		if s.Kind == KindInvalid {
			code, what = "unknown_operator", "operator"
		}

		v.res.AddError(code, fmt.Sprintf("unknown %s %q", what, key), at,
			match.Suggest(key, known, 3)...)
	}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}
