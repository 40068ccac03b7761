package sequencer

import (
	"github.com/san-kum/ntsquare/internal/anim"
	"github.com/san-kum/ntsquare/internal/chain"
	"github.com/san-kum/ntsquare/internal/scale"
)

type Phase int

const (
	Idle Phase = iota
	Animating
)

func (p Phase) String() string {
	if p == Animating {
		return "animating"
	}
	return "idle"
}

type Status int

const (
	Continue Status = iota
	Stopped
)

func (s Status) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "continue"
}

// Result is the outcome of one tick. Index and Value are set only when
// Done is true and name the node that finished and its settled scale.
type Result struct {
	Status Status
	Done   bool
	Index  int
	Value  float32
}

// Config is the fixed per-run easing setup.
type Config struct {
	Easing scale.Easing
	Lines  int
	Steps  int
}

// Snapshot is a copy of the sequencer state for hosts and traces.
type Snapshot struct {
	Current int          `json:"current"`
	Dir     int          `json:"dir"`
	Phase   Phase        `json:"phase"`
	States  []anim.State `json:"states"`
}

// Sequencer walks the current-node pointer across the chain, bouncing at
// both ends. It is not safe for concurrent use.
type Sequencer struct {
	chain   *chain.Chain
	cfg     Config
	current int
	dir     int
	phase   Phase
}

func New(c *chain.Chain, cfg Config) *Sequencer {
	return &Sequencer{
		chain: c,
		cfg:   cfg,
		dir:   1,
	}
}

// Trigger starts the current node if nothing is animating.
func (s *Sequencer) Trigger() bool {
	if !s.chain.Node(s.current).State.Trigger() {
		return false
	}
	s.phase = Animating
	return true
}

// Tick advances the current node by one step. On completion the current
// pointer moves to the neighbour in the traversal direction, flipping the
// direction first when the chain end has been reached.
func (s *Sequencer) Tick() Result {
	if s.phase == Idle {
		return Result{Status: Stopped}
	}

	node := s.chain.Node(s.current)
	c, ok := node.State.Advance(s.cfg.Easing, s.cfg.Lines, s.cfg.Steps)
	if !ok {
		return Result{Status: Continue}
	}

	next, moved := s.chain.Neighbor(s.current, s.dir)
	if !moved {
		s.dir *= -1
	}
	s.current = next
	s.phase = Idle

	return Result{Status: Stopped, Done: true, Index: node.Index, Value: c.Value}
}

// Frame returns the draw set for this frame: the current node and every
// node behind it.
func (s *Sequencer) Frame() []chain.Frame {
	return s.chain.DrawSequence(s.current)
}

func (s *Sequencer) Current() int { return s.current }
func (s *Sequencer) Dir() int { return s.dir }
func (s *Sequencer) Phase() Phase { return s.phase }
func (s *Sequencer) Len() int { return s.chain.Len() }
func (s *Sequencer) Config() Config { return s.cfg }

// NodeState returns a copy of node i's animation state.
func (s *Sequencer) NodeState(i int) anim.State {
	return s.chain.Node(i).State
}

func (s *Sequencer) Snapshot() Snapshot {
	return Snapshot{
		Current: s.current,
		Dir:     s.dir,
		Phase:   s.phase,
		States:  s.chain.States(),
	}
}

// Reset folds every node and returns the pointer to node 0.
func (s *Sequencer) Reset() {
	for i := 0; i < s.chain.Len(); i++ {
		s.chain.Node(i).State = anim.State{}
	}
	s.current = 0
	s.dir = 1
	s.phase = Idle
}
