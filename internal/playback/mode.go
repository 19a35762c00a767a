package playback

import "fmt"

type Mode int

const (
	Idle Mode = iota
	Running
	Paused
	Finished
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Status is a point-in-time view of the controller.
type Status struct {
	Mode   Mode
	Cursor int
	Total  int
}
