package treemap

import "github.com/pkg/errors"

var (
	// ErrInvalidPosition is reported when an operation receives a
	// zero position, a position owned by a different map, or a
	// position whose entry has already been erased.
	ErrInvalidPosition = errors.New("treemap: invalid position")

	// ErrEndPosition is reported when the end sentinel is
	// dereferenced, erased, or advanced.
	ErrEndPosition = errors.New("treemap: end position")

	// ErrBadRange is reported by DelRange when start sorts after end.
	ErrBadRange = errors.New("treemap: range start sorts after end")
)
