package viz

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bal16/BubbleLab/internal/playback"
)

type frameMsg struct{}

// Screen is the renderer side of the controller. It keeps the latest frame
// and wakes the program through a one-slot channel, so Publish never blocks
// the controller.
type Screen struct {
	mu       sync.RWMutex
	frame    playback.Frame
	has      bool
	activity chan struct{}
}

func NewScreen() *Screen {
	return &Screen{activity: make(chan struct{}, 1)}
}

func (s *Screen) Publish(f playback.Frame) {
	s.mu.Lock()
	s.frame, s.has = f, true
	s.mu.Unlock()
	s.notify()
}

func (s *Screen) Reset() {
	s.mu.Lock()
	s.frame, s.has = playback.Frame{}, false
	s.mu.Unlock()
	s.notify()
}

// Frame returns the latest frame and false if the cursor is at -1.
func (s *Screen) Frame() (playback.Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame, s.has
}

func (s *Screen) notify() {
	select {
	case s.activity <- struct{}{}:
	default:
	}
}

// Wait blocks until the next publish or reset.
func (s *Screen) Wait() tea.Cmd {
	return func() tea.Msg {
		<-s.activity
		return frameMsg{}
	}
}
