package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bal16/BubbleLab/internal/sequence"
	"github.com/bal16/BubbleLab/internal/timeline"
)

const (
	barGlyph  = "█"
	minHeight = 3
)

// barColor picks the color for index i. Sorted wins over swapping, which wins
// over comparing.
func barColor(t Theme, h timeline.Highlight, i int) lipgloss.Color {
	switch {
	case h.IsSorted(i):
		return t.Sorted
	case h.IsActive(i) && h.Kind == timeline.KindSwapping:
		return t.Swap
	case h.IsActive(i) && h.Kind == timeline.KindComparing:
		return t.Compare
	}
	return t.Primary
}

// barLayout fits n bars into width columns and returns the bar and gap widths.
func barLayout(n, width int) (bar, gap int) {
	if n <= 0 {
		return 0, 0
	}
	gap = 1
	if n*2-1 > width {
		gap = 0
	}
	bar = (width - gap*(n-1)) / n
	if bar < 1 {
		bar = 1
	}
	return bar, gap
}

// RenderBars draws values as vertical bars height rows tall. Labels are added
// under the bars when there is room for them.
func RenderBars(values sequence.Sequence, h timeline.Highlight, t Theme, width, height int) string {
	if height < minHeight {
		height = minHeight
	}
	n := len(values)
	if n == 0 {
		return lipgloss.NewStyle().Foreground(t.Muted).Render("(empty sequence)")
	}
	bw, gap := barLayout(n, width)
	spacer := strings.Repeat(" ", gap)

	barStyles := make([]lipgloss.Style, n)
	heights := make([]int, n)
	for i, v := range values {
		barStyles[i] = lipgloss.NewStyle().Foreground(barColor(t, h, i))
		heights[i] = (int(v)*height + sequence.MaxValue - 1) / sequence.MaxValue
		if heights[i] < 1 {
			heights[i] = 1
		}
	}

	filled := strings.Repeat(barGlyph, bw)
	empty := strings.Repeat(" ", bw)

	var b strings.Builder
	for row := 0; row < height; row++ {
		level := height - row
		for i := range values {
			if i > 0 {
				b.WriteString(spacer)
			}
			if heights[i] >= level {
				b.WriteString(barStyles[i].Render(filled))
			} else {
				b.WriteString(empty)
			}
		}
		b.WriteByte('\n')
	}

	if bw >= 3 {
		label := lipgloss.NewStyle().Foreground(t.Muted)
		for i, v := range values {
			if i > 0 {
				b.WriteString(spacer)
			}
			b.WriteString(label.Render(fmt.Sprintf("%*d", bw, int(v))))
		}
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// RenderStep draws a recorded step.
func RenderStep(s timeline.Step, t Theme, width, height int) string {
	return RenderBars(s.Snapshot(), s.Highlight(), t, width, height)
}

// RenderInline colors the values of a step on a single line, for headless
// output.
func RenderInline(s timeline.Step, t Theme) string {
	h := s.Highlight()
	parts := make([]string, s.Len())
	for i := range parts {
		st := lipgloss.NewStyle().Foreground(barColor(t, h, i))
		if h.IsActive(i) {
			st = st.Bold(true)
		}
		parts[i] = st.Render(fmt.Sprintf("%d", int(s.Value(i))))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
