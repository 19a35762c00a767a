package timeline

import "fmt"

// Kind tags the active part of a Highlight.
type Kind int

const (
	KindNone Kind = iota
	KindComparing
	KindSwapping
	KindSorted
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindComparing:
		return "comparing"
	case KindSwapping:
		return "swapping"
	case KindSorted:
		return "sorted"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Highlight describes the indices that matter in a step. Boundary is the first
// index already known sorted from the right; it equals the sequence length
// while nothing is sorted. Pair is meaningful only for comparing and swapping.
type Highlight struct {
	Kind     Kind
	Pair     [2]int
	Boundary int
}

func None(n int) Highlight { return Highlight{Kind: KindNone, Boundary: n} }

func Comparing(i, j, boundary int) Highlight {
	return Highlight{Kind: KindComparing, Pair: [2]int{i, j}, Boundary: boundary}
}

func Swapping(i, j, boundary int) Highlight {
	return Highlight{Kind: KindSwapping, Pair: [2]int{i, j}, Boundary: boundary}
}

func SortedFrom(boundary int) Highlight {
	return Highlight{Kind: KindSorted, Boundary: boundary}
}

// IsSorted reports whether index i lies at or past the sorted boundary.
func (h Highlight) IsSorted(i int) bool { return i >= h.Boundary }

// IsActive reports whether index i is part of the comparing or swapping pair.
func (h Highlight) IsActive(i int) bool {
	if h.Kind != KindComparing && h.Kind != KindSwapping {
		return false
	}
	return i == h.Pair[0] || i == h.Pair[1]
}

func (h Highlight) String() string {
	switch h.Kind {
	case KindComparing, KindSwapping:
		return fmt.Sprintf("%s(%d, %d) sortedFrom(%d)", h.Kind, h.Pair[0], h.Pair[1], h.Boundary)
	case KindSorted:
		return fmt.Sprintf("sortedFrom(%d)", h.Boundary)
	}
	return "none"
}
