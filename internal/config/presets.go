package config

import "sort"

var Presets = map[string]*Config{
	"tiny": {
		Size: 6, SpeedMs: 600,
	},
	"classic": {
		Size: 20, SpeedMs: 200,
	},
	"wide": {
		Size: 60, SpeedMs: 40,
	},
	"stress": {
		Size: 100, SpeedMs: 10,
	},
	"crawl": {
		Size: 10, SpeedMs: 1500,
	},
}

// GetPreset returns a copy of the named preset filled with default limits, or
// nil if there is none.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Size = p.Size
	cfg.SpeedMs = p.SpeedMs
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
