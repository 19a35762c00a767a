package timeline

import "log/slog"

// LogObserver writes every recorded step to a logger at debug level.
type LogObserver struct {
	log *slog.Logger
}

func NewLogObserver(l *slog.Logger) *LogObserver {
	return &LogObserver{log: l}
}

func (o *LogObserver) OnStep(index int, s Step) {
	o.log.Debug("step recorded",
		"index", index,
		"highlight", s.Highlight().String(),
		"narrative", s.Narrative(),
	)
}
