package sequence

import "fmt"

const (
	MinValue = 5
	MaxValue = 100
	MinSize  = 2
)

// Element is a bar magnitude in [MinValue, MaxValue].
type Element int

type Sequence []Element

func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	c := make(Sequence, len(s))
	copy(c, s)
	return c
}

// IsSorted reports whether s is in non-decreasing order.
func (s Sequence) IsSorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}

func (s Sequence) Equal(o Sequence) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Validate checks every element against the display range.
func (s Sequence) Validate() error {
	for i, v := range s {
		if v < MinValue || v > MaxValue {
			return fmt.Errorf("%w: index %d value %d", ErrElementRange, i, v)
		}
	}
	return nil
}

// Ints returns the sequence as plain ints, for encoders and plots.
func (s Sequence) Ints() []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[i] = int(v)
	}
	return out
}
