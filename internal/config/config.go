package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ntsquare/internal/anim"
	"github.com/san-kum/ntsquare/internal/scale"
	"github.com/san-kum/ntsquare/internal/sequencer"
	"github.com/san-kum/ntsquare/internal/shape"
)

const (
	DefaultNodes        = 1
	DefaultLines        = 4
	DefaultSteps        = 2
	DefaultGap          = 0.05
	DefaultDiv          = 0.51
	DefaultStrokeFactor = 90
	DefaultSizeFactor   = 2.5
	DefaultForeColor    = "#FF5722"
	DefaultBackColor    = "#BDBDBD"
	DefaultDelay        = 20 * time.Millisecond
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Config struct {
	Nodes        int           `yaml:"nodes"`
	Lines        int           `yaml:"lines"`
	Steps        int           `yaml:"steps"`
	Gap          float32       `yaml:"gap"`
	Div          float64       `yaml:"div"`
	StrokeFactor float64       `yaml:"stroke_factor"`
	SizeFactor   float64       `yaml:"size_factor"`
	ForeColor    string        `yaml:"fore_color"`
	BackColor    string        `yaml:"back_color"`
	Delay        time.Duration `yaml:"delay"`
}

func DefaultConfig() *Config {
	return &Config{
		Nodes:        DefaultNodes,
		Lines:        DefaultLines,
		Steps:        DefaultSteps,
		Gap:          DefaultGap,
		Div:          DefaultDiv,
		StrokeFactor: DefaultStrokeFactor,
		SizeFactor:   DefaultSizeFactor,
		ForeColor:    DefaultForeColor,
		BackColor:    DefaultBackColor,
		Delay:        DefaultDelay,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings that would break the animation at startup
// rather than mid-run.
func (c *Config) Validate() error {
	switch {
	case c.Nodes <= 0:
		return invalid("nodes", c.Nodes, "must be positive")
	case c.Lines <= 0:
		return invalid("lines", c.Lines, "must be positive")
	case c.Steps <= 0:
		return invalid("steps", c.Steps, "must be positive")
	case c.Gap <= 0 || c.Gap > 1:
		return invalid("gap", c.Gap, "must be in (0, 1]")
	case c.Div <= 0:
		return invalid("div", c.Div, "must be positive")
	case c.StrokeFactor <= 0:
		return invalid("stroke_factor", c.StrokeFactor, "must be positive")
	case c.SizeFactor <= 0:
		return invalid("size_factor", c.SizeFactor, "must be positive")
	case !hexColor.MatchString(c.ForeColor):
		return invalid("fore_color", c.ForeColor, "must be #RRGGBB")
	case !hexColor.MatchString(c.BackColor):
		return invalid("back_color", c.BackColor, "must be #RRGGBB")
	case c.Delay < 0:
		return invalid("delay", c.Delay, "must not be negative")
	case !c.settles():
		return invalid("div", c.Div, fmt.Sprintf("easing never completes an animation within %d ticks", MaxAnimationTicks))
	}
	return nil
}

// MaxAnimationTicks bounds a single unfold or fold.
const MaxAnimationTicks = 1 << 20

// settles plays one unfold and one fold of a single node.
func (c *Config) settles() bool {
	e := c.Easing()
	var st anim.State
	for pass := 0; pass < 2; pass++ {
		st.Trigger()
		done := false
		for n := 0; n < MaxAnimationTicks && !done; n++ {
			_, done = st.Advance(e, c.Lines, c.Steps)
		}
		if !done {
			return false
		}
	}
	return true
}

func (c *Config) Easing() scale.Easing {
	return scale.Easing{Gap: c.Gap, Div: c.Div}
}

func (c *Config) Sequencer() sequencer.Config {
	return sequencer.Config{Easing: c.Easing(), Lines: c.Lines, Steps: c.Steps}
}

// Layout sizes the drawing for a viewport of w by h units.
func (c *Config) Layout(w, h float64) shape.Layout {
	return shape.Layout{
		Width:        w,
		Height:       h,
		Nodes:        c.Nodes,
		Lines:        c.Lines,
		Steps:        c.Steps,
		SizeFactor:   c.SizeFactor,
		StrokeFactor: c.StrokeFactor,
	}
}
