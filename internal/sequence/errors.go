package sequence

import "errors"

var (
	// ErrInvalidSize indicates a requested length outside [MinSize, max].
	ErrInvalidSize = errors.New("sequence: size out of range")

	// ErrElementRange indicates a value outside [MinValue, MaxValue].
	ErrElementRange = errors.New("sequence: element out of range")
)
