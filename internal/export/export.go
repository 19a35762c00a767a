package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bal16/BubbleLab/internal/playback"
	"github.com/bal16/BubbleLab/internal/timeline"
)

type HighlightData struct {
	Kind     string `json:"kind"`
	Pair     []int  `json:"pair,omitempty"`
	Boundary int    `json:"sorted_from"`
}

type StepData struct {
	Index      int           `json:"index"`
	Values     []int         `json:"values"`
	Highlight  HighlightData `json:"highlight"`
	Narrative  string        `json:"narrative"`
	Inversions int           `json:"inversions"`
}

type ExportData struct {
	Seed    uint64         `json:"seed,omitempty"`
	Size    int            `json:"size"`
	Initial []int          `json:"initial"`
	Sorted  []int          `json:"sorted"`
	Stats   timeline.Stats `json:"stats"`
	Steps   []StepData     `json:"steps"`
}

func Build(tl *timeline.Timeline, seed uint64) ExportData {
	data := ExportData{
		Seed:    seed,
		Size:    tl.First().Len(),
		Initial: tl.First().Snapshot().Ints(),
		Sorted:  tl.Last().Snapshot().Ints(),
		Stats:   tl.Stats(),
		Steps:   make([]StepData, tl.Len()),
	}
	for i := 0; i < tl.Len(); i++ {
		s := tl.At(i)
		h := s.Highlight()
		hd := HighlightData{Kind: h.Kind.String(), Boundary: h.Boundary}
		if h.Kind == timeline.KindComparing || h.Kind == timeline.KindSwapping {
			hd.Pair = []int{h.Pair[0], h.Pair[1]}
		}
		data.Steps[i] = StepData{
			Index:      i,
			Values:     s.Snapshot().Ints(),
			Highlight:  hd,
			Narrative:  s.Narrative(),
			Inversions: tl.InversionsAt(i),
		}
	}
	return data
}

func WriteJSON(w io.Writer, tl *timeline.Timeline, seed uint64) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Build(tl, seed))
}

// WriteCSV writes one row per step; values are space separated in one column.
func WriteCSV(w io.Writer, tl *timeline.Timeline) error {
	cw := csv.NewWriter(w)
	header := []string{"index", "kind", "i", "j", "sorted_from", "inversions", "narrative", "values"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := 0; i < tl.Len(); i++ {
		s := tl.At(i)
		h := s.Highlight()
		pi, pj := "", ""
		if h.Kind == timeline.KindComparing || h.Kind == timeline.KindSwapping {
			pi, pj = strconv.Itoa(h.Pair[0]), strconv.Itoa(h.Pair[1])
		}
		vals := make([]string, s.Len())
		for k := range vals {
			vals[k] = strconv.Itoa(int(s.Value(k)))
		}
		row := []string{
			strconv.Itoa(i),
			h.Kind.String(),
			pi, pj,
			strconv.Itoa(h.Boundary),
			strconv.Itoa(tl.InversionsAt(i)),
			s.Narrative(),
			strings.Join(vals, " "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLog writes the history log lines for the whole timeline.
func WriteLog(w io.Writer, tl *timeline.Timeline) error {
	for i := 1; i < tl.Len(); i++ {
		if _, err := fmt.Fprintln(w, playback.FormatLine(i, tl.At(i).Narrative())); err != nil {
			return err
		}
	}
	return nil
}
