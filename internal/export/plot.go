package export

import (
	"github.com/guptarohit/asciigraph"

	"github.com/bal16/BubbleLab/internal/timeline"
)

// Plot charts the inversions left in the sequence at every step.
func Plot(tl *timeline.Timeline, width, height int) string {
	series := make([]float64, tl.Len())
	for i := range series {
		series[i] = float64(tl.InversionsAt(i))
	}
	if len(series) == 1 {
		series = append(series, series[0])
	}
	return asciigraph.Plot(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption("inversions remaining per step"),
	)
}
