package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Actions understood by a scenario step.
const (
	ActionTap       = "tap"
	ActionInterrupt = "interrupt"
	ActionSettle    = "settle"
	ActionPause     = "pause"
)

// Scenario is a scripted sequence of driver inputs.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single scripted input. Count repeats tap, interrupt and
// settle (default 1); Wait is the length of a pause.
type Step struct {
	Action string        `yaml:"action"`
	Count  int           `yaml:"count,omitempty"`
	Wait   time.Duration `yaml:"wait,omitempty"`
}

// Target receives scripted taps and interrupts.
type Target interface {
	Tap()
	Interrupt()
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScenario)
	}
	for i, step := range s.Steps {
		switch step.Action {
		case ActionTap, ActionInterrupt, ActionSettle:
			if step.Count < 0 {
				return fmt.Errorf("%w: step %d: negative count", ErrInvalidScenario, i+1)
			}
		case ActionPause:
			if step.Wait <= 0 {
				return fmt.Errorf("%w: step %d: pause needs a positive wait", ErrInvalidScenario, i+1)
			}
		default:
			return fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScenario, i+1, step.Action)
		}
	}
	return nil
}

// Taps counts the tap inputs the scenario delivers.
func (s *Scenario) Taps() int {
	n := 0
	for _, step := range s.Steps {
		if step.Action == ActionTap {
			n += repeat(step.Count)
		}
	}
	return n
}

// TapScript taps n times, letting each animation settle before the next.
func TapScript(n int) *Scenario {
	s := &Scenario{Name: fmt.Sprintf("%d taps", n)}
	for i := 0; i < n; i++ {
		s.Steps = append(s.Steps, Step{Action: ActionTap}, Step{Action: ActionSettle})
	}
	return s
}

// Play executes the steps against t. settled must receive once each time
// an animation has finished drawing; stale signals are dropped before
// every tap.
func (s *Scenario) Play(ctx context.Context, t Target, settled <-chan struct{}, logger *slog.Logger) error {
	for i, step := range s.Steps {
		logger.Debug("scenario step", "step", i+1, "of", len(s.Steps), "action", step.Action)
		switch step.Action {
		case ActionTap:
			for n := 0; n < repeat(step.Count); n++ {
				drain(settled)
				t.Tap()
			}
		case ActionInterrupt:
			for n := 0; n < repeat(step.Count); n++ {
				t.Interrupt()
			}
		case ActionSettle:
			for n := 0; n < repeat(step.Count); n++ {
				select {
				case <-settled:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		case ActionPause:
			timer := time.NewTimer(step.Wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}
	return nil
}

func repeat(count int) int {
	if count == 0 {
		return 1
	}
	return count
}

func drain(c <-chan struct{}) {
	for {
		select {
		case <-c:
		default:
			return
		}
	}
}
