package anim

import (
	"math"

	"github.com/san-kum/ntsquare/internal/scale"
)

// State is the per-node animation progress.
//
// Dir is 0 while idle and +1/-1 while animating. PrevScale is the last
// settled value and is always 0 or 1 once the node is idle.
type State struct {
	Scale     float32 `json:"scale"`
	PrevScale float32 `json:"prev_scale"`
	Dir       float32 `json:"dir"`
}

// Completion reports the settled value of a finished animation.
type Completion struct {
	Value float32
}

// Idle reports whether no animation is in flight.
func (s *State) Idle() bool {
	return s.Dir == 0
}

// Advance applies one tick. The per-tick rate blends 1/(2*lines) and
// 1/steps around the easing threshold. When the scale moves more than a
// full unit away from PrevScale it snaps to PrevScale+Dir and the
// completion is returned with ok set.
//
// Calling Advance while idle leaves the state unchanged.
func (s *State) Advance(e scale.Easing, lines, steps int) (Completion, bool) {
	s.Scale += e.UpdateValue(s.Scale, s.Dir, 2*lines, steps)
	if math.Abs(float64(s.Scale-s.PrevScale)) <= 1 {
		return Completion{}, false
	}
	s.Scale = s.PrevScale + s.Dir
	s.Dir = 0
	s.PrevScale = s.Scale
	return Completion{Value: s.PrevScale}, true
}

// Trigger starts an animation toward the opposite settled value. It
// returns false, leaving the state untouched, if one is already running.
func (s *State) Trigger() bool {
	if s.Dir != 0 {
		return false
	}
	s.Dir = 1 - 2*s.PrevScale
	return true
}
