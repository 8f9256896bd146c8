package imgedit

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyImage is returned when an operation needs at least one pixel.
	ErrEmptyImage = errors.New("imgedit: empty image")

	// ErrInvalidDimensions is returned for negative, mismatched or
	// oversized buffer dimensions.
	ErrInvalidDimensions = errors.New("imgedit: invalid dimensions")

	// ErrUnknownOperation is returned for operations of an unknown kind.
	ErrUnknownOperation = errors.New("imgedit: unknown operation")

	// ErrOutOfRange is returned for operation parameters outside their
	// documented bounds.
	ErrOutOfRange = errors.New("imgedit: parameter out of range")

	// ErrUnsupportedVersion is returned when restoring saved edits written
	// by a newer format version.
	ErrUnsupportedVersion = errors.New("imgedit: unsupported edit state version")
)

// GeometryError reports an image operation that failed during a
// recompute. The operation was skipped and the rest of the stack ran.
type GeometryError struct {
	Index int
	Op    Operation
	Err   error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("imgedit: %s (#%d) skipped: %v", Label(e.Op), e.Index, e.Err)
}

func (e *GeometryError) Unwrap() error {
	return e.Err
}
