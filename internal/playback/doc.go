// Package playback walks a recorded timeline forward and backward.
//
// A [Controller] owns the cursor and the [Mode]. While Running it advances the
// cursor once per delay on its own goroutine; while Paused the cursor moves
// only through StepForward and StepBackward. Every cursor change is pushed to
// the registered [Publisher] values as a complete [Frame].
//
// # Stale advances
//
// Each Start begins a new generation. Stop and Start invalidate the previous
// generation, so a timed wait that was already in flight finds a mismatched
// token and publishes nothing.
//
// # Errors
//
// Operations called from a mode that does not allow them return an error
// wrapping [ErrInvalidTransition] and change nothing. UI callers that disable
// buttons in those modes may ignore it.
package playback
