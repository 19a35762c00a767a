package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition indicates an operation called from a mode that does
	// not allow it.
	ErrInvalidTransition = errors.New("playback: operation not valid in current mode")

	// ErrEmptyTimeline indicates Start was given a nil or empty timeline.
	ErrEmptyTimeline = errors.New("playback: empty timeline")
)

// TransitionError records the rejected operation and the mode it was called in.
type TransitionError struct {
	Op   string
	Mode Mode
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("playback: %s not valid while %s", e.Op, e.Mode)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
