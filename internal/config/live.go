package config

import (
	"sync/atomic"
	"time"
)

// Live holds the values the user can adjust while the program runs. Reads and
// writes are safe from any goroutine; writes are clamped to the limits.
type Live struct {
	limits  LimitsConfig
	size    atomic.Int64
	speedMs atomic.Int64
}

func NewLive(cfg *Config) *Live {
	l := &Live{limits: cfg.Limits}
	l.SetSize(cfg.Size)
	l.SetSpeedMs(cfg.SpeedMs)
	return l
}

func (l *Live) Size() int            { return int(l.size.Load()) }
func (l *Live) SpeedMs() int         { return int(l.speedMs.Load()) }
func (l *Live) Limits() LimitsConfig { return l.limits }

// Speed implements playback.Speeder.
func (l *Live) Speed() time.Duration {
	return time.Duration(l.speedMs.Load()) * time.Millisecond
}

func (l *Live) SetSize(n int) int {
	n = clamp(n, l.limits.MinSize, l.limits.MaxSize)
	l.size.Store(int64(n))
	return n
}

func (l *Live) SetSpeedMs(ms int) int {
	ms = clamp(ms, l.limits.MinSpeedMs, l.limits.MaxSpeedMs)
	l.speedMs.Store(int64(ms))
	return ms
}

func (l *Live) AdjustSize(delta int) int    { return l.SetSize(l.Size() + delta) }
func (l *Live) AdjustSpeedMs(delta int) int { return l.SetSpeedMs(l.SpeedMs() + delta) }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
