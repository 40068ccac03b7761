package automation

import (
	"github.com/san-kum/ntsquare/internal/chain"
	"github.com/san-kum/ntsquare/internal/driver"
	"github.com/san-kum/ntsquare/internal/sequencer"
)

// Settler signals each time a driven sequencer comes to rest: after the
// final redraw of an animation, or when that redraw was skipped. Register
// it as both the driver's sink and an observer.
type Settler struct {
	sink    driver.Sink
	seq     *sequencer.Sequencer
	settled chan struct{}
}

// NewSettler wraps sink, which may be nil.
func NewSettler(seq *sequencer.Sequencer, sink driver.Sink) *Settler {
	return &Settler{sink: sink, seq: seq, settled: make(chan struct{}, 1)}
}

func (s *Settler) Redraw(frame []chain.Frame) {
	if s.sink != nil {
		s.sink.Redraw(frame)
	}
	s.check()
}

func (s *Settler) OnTap(bool) {}

func (s *Settler) OnTick(sequencer.Result) {}

func (s *Settler) OnSkip() { s.check() }

// Settled receives at most one pending signal.
func (s *Settler) Settled() <-chan struct{} { return s.settled }

func (s *Settler) check() {
	if s.seq.Phase() != sequencer.Idle {
		return
	}
	select {
	case s.settled <- struct{}{}:
	default:
	}
}
