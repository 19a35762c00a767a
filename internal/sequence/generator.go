package sequence

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Generator draws random sequences. It is not safe for concurrent use.
type Generator struct {
	rng     *rand.Rand
	seed    uint64
	maxSize int
}

// NewGenerator returns a generator bounded by maxSize. A zero seed picks one
// from the wall clock; Seed reports the value actually used.
func NewGenerator(seed int64, maxSize int) *Generator {
	s := uint64(seed)
	if seed == 0 {
		s = uint64(time.Now().UnixNano())
	}
	if maxSize < MinSize {
		maxSize = MinSize
	}
	return &Generator{
		rng:     rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15)),
		seed:    s,
		maxSize: maxSize,
	}
}

func (g *Generator) Seed() uint64 { return g.seed }

// Generate returns size elements drawn uniformly from [MinValue, MaxValue).
func (g *Generator) Generate(size int) (Sequence, error) {
	if size < MinSize || size > g.maxSize {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidSize, size, MinSize, g.maxSize)
	}
	s := make(Sequence, size)
	for i := range s {
		s[i] = Element(MinValue + g.rng.IntN(MaxValue-MinValue))
	}
	return s, nil
}
