package export

import (
	"fmt"
	"strings"

	"github.com/bal16/BubbleLab/internal/sequence"
	"github.com/bal16/BubbleLab/internal/timeline"
)

// Palette holds the hex colors used for SVG output.
type Palette struct {
	Background string
	Primary    string
	Compare    string
	Swap       string
	Sorted     string
	Text       string
}

var DefaultPalette = Palette{
	Background: "#1a1b26",
	Primary:    "#7aa2f7",
	Compare:    "#e0af68",
	Swap:       "#f7768e",
	Sorted:     "#9ece6a",
	Text:       "#c0caf5",
}

func (p Palette) fill(h timeline.Highlight, i int) string {
	switch {
	case h.IsSorted(i):
		return p.Sorted
	case h.IsActive(i) && h.Kind == timeline.KindSwapping:
		return p.Swap
	case h.IsActive(i) && h.Kind == timeline.KindComparing:
		return p.Compare
	}
	return p.Primary
}

// StepToSVG draws one step as a bar chart. Bars are barWidth pixels wide and
// the tallest possible value reaches height.
func StepToSVG(s timeline.Step, p Palette, barWidth, height int) string {
	if barWidth < 2 {
		barWidth = 2
	}
	if height < 10 {
		height = 10
	}
	const gap, labelRows = 2, 16

	n := s.Len()
	width := n*(barWidth+gap) + gap
	total := height + labelRows*2
	h := s.Highlight()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, total, width, total, p.Background))

	for i := 0; i < n; i++ {
		v := int(s.Value(i))
		bh := v * height / sequence.MaxValue
		if bh < 1 {
			bh = 1
		}
		x := gap + i*(barWidth+gap)
		y := labelRows + height - bh
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"><title>%d</title></rect>
`, x, y, barWidth, bh, p.fill(h, i), v))
	}

	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, gap, total-4, p.Text, escapeXML(s.Narrative())))
	sb.WriteString("</svg>")
	return sb.String()
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
