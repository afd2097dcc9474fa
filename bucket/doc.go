// Package bucket provides the ordered multimap that backs grouping.
//
// A Store collects arbitrary items under caller-chosen keys. Two ordering
// guarantees hold for every Store:
//   - keys are reported in the order they were first added;
//   - items under one key are reported in the order they were added.
//
// Neither guarantee depends on Go map iteration order.
package bucket
