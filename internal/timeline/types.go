package timeline

import "github.com/bal16/BubbleLab/internal/sequence"

// Step is one recorded instant of the sort. The snapshot reflects the state
// after any swap performed to reach this step.
type Step struct {
	snapshot  sequence.Sequence
	highlight Highlight
	narrative string
}

func newStep(s sequence.Sequence, h Highlight, narrative string) Step {
	return Step{snapshot: s.Clone(), highlight: h, narrative: narrative}
}

// Snapshot returns a copy of the sequence at this step.
func (s Step) Snapshot() sequence.Sequence { return s.snapshot.Clone() }

// Value returns the element at index i of the snapshot.
func (s Step) Value(i int) sequence.Element { return s.snapshot[i] }

// Len returns the number of elements in the snapshot.
func (s Step) Len() int { return len(s.snapshot) }

func (s Step) Highlight() Highlight { return s.highlight }
func (s Step) Narrative() string    { return s.narrative }

func (s Step) Equal(o Step) bool {
	return s.highlight == o.highlight && s.narrative == o.narrative && s.snapshot.Equal(o.snapshot)
}

// Observer is notified of each step as it is appended.
type Observer interface {
	OnStep(index int, s Step)
}

// Stats summarizes the work done by one run.
type Stats struct {
	Comparisons int `json:"comparisons"`
	Swaps       int `json:"swaps"`
	Passes      int `json:"passes"`
	Inversions  int `json:"inversions"`
}

// Timeline is the ordered list of steps for one run. Index 0 is the initial
// state and the last index is the final state.
type Timeline struct {
	steps []Step
	// swapsThrough[i] counts swap steps in steps[0..i].
	swapsThrough []int
	stats        Stats
}

func (t *Timeline) Len() int {
	if t == nil {
		return 0
	}
	return len(t.steps)
}

// At returns step i; it panics outside [0, Len).
func (t *Timeline) At(i int) Step { return t.steps[i] }

// First returns the initial state.
func (t *Timeline) First() Step { return t.steps[0] }

// Last returns the final state.
func (t *Timeline) Last() Step { return t.steps[len(t.steps)-1] }

func (t *Timeline) Stats() Stats { return t.stats }

// InversionsAt returns the inversions left in the snapshot of step i. Every
// adjacent swap removes exactly one inversion.
func (t *Timeline) InversionsAt(i int) int {
	return t.stats.Inversions - t.swapsThrough[i]
}

func (t *Timeline) append(s Step) int {
	swaps := 0
	if n := len(t.swapsThrough); n > 0 {
		swaps = t.swapsThrough[n-1]
	}
	if s.highlight.Kind == KindSwapping {
		swaps++
	}
	t.steps = append(t.steps, s)
	t.swapsThrough = append(t.swapsThrough, swaps)
	return len(t.steps) - 1
}
