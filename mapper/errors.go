package mapper

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedInstruction is returned for an instruction, grouping or
	// reduction that cannot be resolved: in practice a nil one.
	ErrUnsupportedInstruction = errors.New("unsupported instruction")

	ErrEmptyPath   = errors.New("empty path")
	ErrInvalidPath = errors.New("invalid path")
)

func unsupported(what string) error {
	return fmt.Errorf("%s: %w", what, ErrUnsupportedInstruction)
}
