// Package strategy provides ready-made strategies, groupings and group
// aggregates for the mapper package, and a Registry that names them for
// instruction files.
//
// Field arguments accept the dotted path syntax of mapper.ParsePath.
//
// Aggregating strategies (Sum, Average, Min, Max, Count, Collect) work on the
// broader context: the sibling sequence inside Array, or the bucket inside a
// grouped reduction.
package strategy
