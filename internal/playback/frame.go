package playback

import "github.com/bal16/BubbleLab/internal/timeline"

// Frame is everything a view needs to draw the current cursor position.
type Frame struct {
	Timeline *timeline.Timeline
	Cursor   int
	Total    int
	Mode     Mode
	Step     timeline.Step
}

// Publisher receives frames on every cursor change and Reset when the cursor
// returns to -1. Both are called with the controller lock held; they must be
// quick and must not call back into the controller.
type Publisher interface {
	Publish(f Frame)
	Reset()
}

// PublisherFunc adapts a function to a Publisher with a no-op Reset.
type PublisherFunc func(Frame)

func (f PublisherFunc) Publish(fr Frame) { f(fr) }
func (f PublisherFunc) Reset()           {}
