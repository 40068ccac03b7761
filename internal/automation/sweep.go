package automation

import (
	"context"
	"fmt"

	"github.com/san-kum/ntsquare/internal/chain"
	"github.com/san-kum/ntsquare/internal/config"
	"github.com/san-kum/ntsquare/internal/sequencer"
)

// ParameterSweep measures animation length across a range of one
// easing parameter.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds the tick counts of one unfold and the following fold.
type SweepResult struct {
	ParamValue  float64
	UnfoldTicks int
	FoldTicks   int
}

// SweepParams lists the parameters a sweep can vary.
var SweepParams = []string{"gap", "div", "lines", "steps"}

// RunSweep executes a parameter sweep over a single node.
func RunSweep(ctx context.Context, base *config.Config, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := *base
		cfg.Nodes = 1
		if err := setParam(&cfg, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return results, fmt.Errorf("sweep %s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		c, err := chain.New(1)
		if err != nil {
			return nil, err
		}
		seq := sequencer.New(c, cfg.Sequencer())

		unfold, err := animationTicks(seq)
		if err != nil {
			return results, fmt.Errorf("sweep %s=%.4f: %w", sweep.ParamName, paramVal, err)
		}
		fold, err := animationTicks(seq)
		if err != nil {
			return results, fmt.Errorf("sweep %s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue:  paramVal,
			UnfoldTicks: unfold,
			FoldTicks:   fold,
		})
	}
	return results, nil
}

func animationTicks(seq *sequencer.Sequencer) (int, error) {
	seq.Trigger()
	for n := 1; n <= config.MaxAnimationTicks; n++ {
		if seq.Tick().Status == sequencer.Stopped {
			return n, nil
		}
	}
	return 0, fmt.Errorf("animation did not finish within %d ticks", config.MaxAnimationTicks)
}

func setParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "gap":
		cfg.Gap = float32(v)
	case "div":
		cfg.Div = v
	case "lines":
		cfg.Lines = int(v + 0.5)
	case "steps":
		cfg.Steps = int(v + 0.5)
	default:
		return fmt.Errorf("unknown sweep parameter %q (available: %v)", name, SweepParams)
	}
	return nil
}
