// Package bound parses the single positional integer every benchmark
// program takes.
package bound

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidArgument is returned when the argument is missing or is not a
// base-10 integer that fits in 32 bits.
var ErrInvalidArgument = errors.New("invalid argument")

// Parse parses s as an optionally signed 32-bit decimal integer.
func Parse(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q is out of range for a 32-bit integer", ErrInvalidArgument, s)
		}
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidArgument, s)
	}
	return int32(v), nil
}

// FromArgs extracts the bound from a command's positional arguments.
// Exactly one argument is required.
func FromArgs(args []string) (int32, error) {
	switch len(args) {
	case 0:
		return 0, fmt.Errorf("%w: missing bound", ErrInvalidArgument)
	case 1:
		return Parse(args[0])
	default:
		return 0, fmt.Errorf("%w: expected one bound, got %d arguments", ErrInvalidArgument, len(args))
	}
}
