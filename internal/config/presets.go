package config

import "sort"

// Presets are the two shipped variants: a single node and a five-node stack.
var Presets = map[string]*Config{
	"single": {
		Nodes: 1, Lines: DefaultLines, Steps: DefaultSteps, Gap: DefaultGap, Div: DefaultDiv,
		StrokeFactor: DefaultStrokeFactor, SizeFactor: DefaultSizeFactor,
		ForeColor: DefaultForeColor, BackColor: DefaultBackColor, Delay: DefaultDelay,
	},
	"stack": {
		Nodes: 5, Lines: DefaultLines, Steps: DefaultSteps, Gap: DefaultGap, Div: DefaultDiv,
		StrokeFactor: DefaultStrokeFactor, SizeFactor: DefaultSizeFactor,
		ForeColor: DefaultForeColor, BackColor: DefaultBackColor, Delay: DefaultDelay,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
