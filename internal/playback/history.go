package playback

import (
	"fmt"
	"sync"
)

// HistoryLog keeps one line per step from index 1 through the cursor. The
// initial step is not logged. The log is rebuilt on every publish so that
// stepping backward shrinks it.
type HistoryLog struct {
	mu    sync.RWMutex
	lines []string
}

func NewHistoryLog() *HistoryLog {
	return &HistoryLog{lines: make([]string, 0)}
}

func (h *HistoryLog) Publish(f Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lines = h.lines[:0]
	for i := 1; i <= f.Cursor; i++ {
		h.lines = append(h.lines, FormatLine(i, f.Timeline.At(i).Narrative()))
	}
}

func (h *HistoryLog) Reset() {
	h.mu.Lock()
	h.lines = h.lines[:0]
	h.mu.Unlock()
}

// Lines returns a copy of the current log.
func (h *HistoryLog) Lines() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

func (h *HistoryLog) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.lines)
}

// Tail returns at most n of the most recent lines.
func (h *HistoryLog) Tail(n int) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	start := len(h.lines) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, len(h.lines)-start)
	copy(out, h.lines[start:])
	return out
}

func FormatLine(index int, narrative string) string {
	return fmt.Sprintf("[%d] %s", index, narrative)
}
