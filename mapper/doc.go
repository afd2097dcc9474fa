// Package mapper is a declarative tree-transformation engine.
//
// A destination document is described by an instruction Tree: an ordered set
// of destination names, each bound to an Instruction. An instruction is either
//
//   - a FieldAlias, which copies a named field of the current record, or
//   - a Strategy, a function that computes the value and may re-enter the
//     engine through the Handles it receives.
//
// Three operations compose recursively:
//
//	Object(current, tree, source)     -> *Record
//	Array(source, tree)               -> []any of *Record
//	Group(source, grouping, reduce)   -> []any of *Record, or an aggregate value
//
// Group first places every source item into Buckets using a Grouping, then
// either maps one Record per bucket (reduce is a *Tree) or computes one value
// from all buckets (reduce is an Aggregate). Nested groups inside strategies
// hydrate flat, denormalized rows into nested documents:
//
//	m := mapper.New()
//	out, err := m.Group(rows, strategy.By("EMPLOYER_ID"), mapper.NewTree().
//		Set("employerId", mapper.Alias("EMPLOYER_ID")).
//		Set("participants", mapper.Strategy(func(_ any, h mapper.Handles, bucket []any) (any, error) {
//			return h.Group(bucket, strategy.By("PERSON_ID"), mapper.NewTree().
//				Set("personId", mapper.Alias("PERSON_ID")).
//				Set("totalAmount", strategy.Sum("AMOUNT")))
//		})))
//
// # Absent values
//
// A missing field resolves to nil and the destination key is still written.
// Dotted paths built with Path behave the same way for every missing segment.
//
// # Errors
//
// Errors returned by strategies, groupings and aggregates reach the caller
// unchanged. A nil instruction, grouping or reduction yields an error
// wrapping ErrUnsupportedInstruction.
package mapper
