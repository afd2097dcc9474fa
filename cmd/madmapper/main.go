// Package main provides the CLI entrypoint for madmapper.
//
// madmapper runs declarative instruction files against JSON or YAML
// documents:
//   - map: restructure input documents (objects, arrays, groups of groups)
//   - check: validate instruction files and explain what is wrong
//   - strategies: list the named strategies and aggregates
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
