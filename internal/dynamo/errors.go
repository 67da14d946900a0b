package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for map iteration.
var (
	// ErrInvalidLength indicates a trajectory length or retained-iteration
	// count that is zero or negative (or a negative discard count).
	ErrInvalidLength = errors.New("dynamo: invalid length")

	// ErrInvalidRangeCount indicates a parameter range requested with count <= 0.
	ErrInvalidRangeCount = errors.New("dynamo: invalid range count")

	// ErrShapeMismatch indicates state and parameter batches that cannot be
	// broadcast against each other.
	ErrShapeMismatch = errors.New("dynamo: shape mismatch between state and parameter batches")
)

// ArgumentError wraps a domain error with the operation and offending argument.
type ArgumentError struct {
	Op      string
	Arg     string
	Value   any
	Wrapped error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %v", e.Op, e.Arg, e.Value, e.Wrapped)
}

func (e *ArgumentError) Unwrap() error {
	return e.Wrapped
}

func argErr(op, arg string, value any, err error) error {
	return &ArgumentError{Op: op, Arg: arg, Value: value, Wrapped: err}
}

// InvalidLength builds an ArgumentError wrapping ErrInvalidLength.
func InvalidLength(op, arg string, value int) error {
	return argErr(op, arg, value, ErrInvalidLength)
}

// InvalidRangeCount builds an ArgumentError wrapping ErrInvalidRangeCount.
func InvalidRangeCount(op string, count int) error {
	return argErr(op, "count", count, ErrInvalidRangeCount)
}

// ShapeMismatch builds an ArgumentError wrapping ErrShapeMismatch.
func ShapeMismatch(op string, xLen, rLen int) error {
	return argErr(op, "shape", fmt.Sprintf("%d vs %d", xLen, rLen), ErrShapeMismatch)
}
