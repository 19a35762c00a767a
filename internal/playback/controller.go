package playback

import (
	"log/slog"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/bal16/BubbleLab/internal/timeline"
)

// Speeder supplies the delay before each automatic advance. It is read once
// per wait, so a change takes effect on the next wait.
type Speeder interface {
	Speed() time.Duration
}

// FixedSpeed is a constant Speeder.
type FixedSpeed time.Duration

func (f FixedSpeed) Speed() time.Duration { return time.Duration(f) }

// Options configures a Controller. Zero values pick the real clock, a 200ms
// delay and a discarding logger.
type Options struct {
	Clock  clock.Clock
	Speed  Speeder
	Logger *slog.Logger
	// OnStop runs after Stop has reset the controller, outside the lock.
	OnStop func()
}

// Controller owns the cursor and mode for one timeline at a time.
type Controller struct {
	clock  clock.Clock
	speed  Speeder
	log    *slog.Logger
	onStop func()

	mu         sync.Mutex
	resumed    *sync.Cond
	mode       Mode
	cursor     int
	tl         *timeline.Timeline
	gen        uint64
	cancel     chan struct{}
	publishers []Publisher
}

// New returns an Idle controller with no timeline.
func New(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Speed == nil {
		opts.Speed = FixedSpeed(200 * time.Millisecond)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	c := &Controller{
		clock:      opts.Clock,
		speed:      opts.Speed,
		log:        opts.Logger.With("component", "playback"),
		onStop:     opts.OnStop,
		mode:       Idle,
		cursor:     -1,
		publishers: make([]Publisher, 0),
	}
	c.resumed = sync.NewCond(&c.mu)
	return c
}

func (c *Controller) AddPublisher(p Publisher) {
	c.mu.Lock()
	c.publishers = append(c.publishers, p)
	c.mu.Unlock()
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{Mode: c.mode, Cursor: c.cursor, Total: c.tl.Len()}
}

// Start begins automatic playback of tl from before its first step.
func (c *Controller) Start(tl *timeline.Timeline) error {
	if tl.Len() == 0 {
		return ErrEmptyTimeline
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Idle && c.mode != Finished {
		return &TransitionError{Op: "start", Mode: c.mode}
	}

	c.invalidate()
	c.tl = tl
	c.cursor = -1
	c.mode = Running
	c.reset()

	gen, cancel := c.gen, c.cancel
	c.log.Info("playback started", "steps", tl.Len(), "generation", gen)
	go c.run(gen, cancel)
	return nil
}

func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Running {
		return &TransitionError{Op: "pause", Mode: c.mode}
	}
	c.mode = Paused
	c.log.Debug("paused", "cursor", c.cursor)
	return nil
}

func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Paused {
		return &TransitionError{Op: "resume", Mode: c.mode}
	}
	if c.cursor >= c.tl.Len()-1 {
		c.finish()
	} else {
		c.mode = Running
		c.log.Debug("resumed", "cursor", c.cursor)
	}
	c.resumed.Broadcast()
	return nil
}

func (c *Controller) StepForward() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Paused {
		return &TransitionError{Op: "step forward", Mode: c.mode}
	}
	if c.cursor < c.tl.Len()-1 {
		c.cursor++
		c.publish()
	}
	return nil
}

func (c *Controller) StepBackward() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Paused {
		return &TransitionError{Op: "step backward", Mode: c.mode}
	}
	if c.cursor > 0 {
		c.cursor--
		c.publish()
	}
	return nil
}

// Stop discards the timeline and returns to Idle. Any in-flight wait is
// invalidated before Stop returns.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.mode == Idle {
		c.mu.Unlock()
		return &TransitionError{Op: "stop", Mode: c.mode}
	}
	c.invalidate()
	c.mode = Idle
	c.cursor = -1
	c.tl = nil
	c.reset()
	c.resumed.Broadcast()
	c.log.Info("playback stopped", "generation", c.gen)
	onStop := c.onStop
	c.mu.Unlock()

	if onStop != nil {
		onStop()
	}
	return nil
}

// Refresh publishes the current frame again.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor >= 0 {
		c.publish()
	}
}

func (c *Controller) run(gen uint64, cancel <-chan struct{}) {
	for {
		select {
		case <-c.clock.After(c.speed.Speed()):
		case <-cancel:
			return
		}
		if !c.advance(gen) {
			return
		}
	}
}

// advance moves the cursor one step for generation gen. A wait that fires
// while Paused blocks here until Resume, so exactly one advance follows.
func (c *Controller) advance(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.gen == gen && c.mode == Paused {
		c.resumed.Wait()
	}
	if c.gen != gen {
		c.log.Debug("dropped stale advance", "generation", gen, "current", c.gen)
		return false
	}
	if c.mode != Running {
		return false
	}

	last := c.tl.Len() - 1
	if c.cursor >= last {
		c.finish()
		return false
	}
	c.cursor++
	if c.cursor == last {
		c.finish()
	}
	c.publish()
	return c.mode == Running
}

func (c *Controller) finish() {
	c.mode = Finished
	if c.cancel != nil {
		close(c.cancel)
		c.cancel = nil
	}
	c.log.Info("playback finished", "steps", c.tl.Len())
}

// invalidate ends the current generation. The caller holds mu.
func (c *Controller) invalidate() {
	if c.cancel != nil {
		close(c.cancel)
	}
	c.gen++
	c.cancel = make(chan struct{})
}

func (c *Controller) publish() {
	f := Frame{
		Timeline: c.tl,
		Cursor:   c.cursor,
		Total:    c.tl.Len(),
		Mode:     c.mode,
		Step:     c.tl.At(c.cursor),
	}
	for _, p := range c.publishers {
		p.Publish(f)
	}
}

func (c *Controller) reset() {
	for _, p := range c.publishers {
		p.Reset()
	}
}
