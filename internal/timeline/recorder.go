package timeline

import (
	"fmt"

	"github.com/bal16/BubbleLab/internal/sequence"
)

const (
	narrativeInitial       = "initial state"
	narrativeAlreadySorted = "initial state (already sorted)"
	narrativeComplete      = "sorting complete"
)

type Recorder struct {
	observers []Observer
}

func NewRecorder() *Recorder {
	return &Recorder{observers: make([]Observer, 0)}
}

func (r *Recorder) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Record is shorthand for NewRecorder().Record(initial).
func Record(initial sequence.Sequence) *Timeline {
	return NewRecorder().Record(initial)
}

// Record runs bubble sort with early exit on a copy of initial and returns
// every comparison, swap and pass boundary as a step. The result depends only
// on initial. Any element values are accepted; the display range is enforced
// by the generator.
func (r *Recorder) Record(initial sequence.Sequence) *Timeline {
	a := initial.Clone()
	n := len(a)
	tl := &Timeline{
		steps:        make([]Step, 0, estimateSteps(n)),
		swapsThrough: make([]int, 0, estimateSteps(n)),
		stats:        Stats{Inversions: countInversions(a)},
	}

	if n < 2 {
		r.emit(tl, newStep(a, None(n), narrativeAlreadySorted))
		return tl
	}

	r.emit(tl, newStep(a, None(n), narrativeInitial))

	for i := 0; i < n-1; i++ {
		swapped := false
		boundary := n - i
		for j := 0; j < boundary-1; j++ {
			r.emit(tl, newStep(a, Comparing(j, j+1, boundary), fmt.Sprintf("comparing %d and %d", a[j], a[j+1])))
			tl.stats.Comparisons++

			if a[j] > a[j+1] {
				a[j], a[j+1] = a[j+1], a[j]
				swapped = true
				tl.stats.Swaps++
				r.emit(tl, newStep(a, Swapping(j, j+1, boundary), fmt.Sprintf("swapping %d and %d", a[j+1], a[j])))
			}
		}
		tl.stats.Passes++
		r.emit(tl, newStep(a, SortedFrom(boundary-1), fmt.Sprintf("pass %d complete", i+1)))
		if !swapped {
			break
		}
	}

	r.emit(tl, newStep(a, SortedFrom(0), narrativeComplete))
	return tl
}

func (r *Recorder) emit(tl *Timeline, s Step) {
	idx := tl.append(s)
	for _, o := range r.observers {
		o.OnStep(idx, s)
	}
}

// estimateSteps bounds the worst case: n(n-1)/2 comparisons and as many swaps,
// one step per pass, plus the initial and final steps.
func estimateSteps(n int) int {
	if n < 2 {
		return 1
	}
	return n*(n-1) + n + 1
}

func countInversions(a sequence.Sequence) int {
	inv := 0
	for i := 0; i < len(a); i++ {
		for j := i + 1; j < len(a); j++ {
			if a[i] > a[j] {
				inv++
			}
		}
	}
	return inv
}
