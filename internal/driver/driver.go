package driver

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/san-kum/ntsquare/internal/chain"
	"github.com/san-kum/ntsquare/internal/sequencer"
)

// DefaultDelay is the target pause between ticks.
const DefaultDelay = 20 * time.Millisecond

// Sink receives the draw set after every tick.
type Sink interface {
	Redraw(frame []chain.Frame)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(frame []chain.Frame)

func (f SinkFunc) Redraw(frame []chain.Frame) { f(frame) }

// Observer is notified of driver events on the driving goroutine.
type Observer interface {
	OnTap(started bool)
	OnTick(r sequencer.Result)
	OnSkip()
}

type Option func(*Driver)

func WithDelay(d time.Duration) Option {
	return func(drv *Driver) { drv.delay = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(drv *Driver) { drv.logger = l }
}

func WithObserver(o Observer) Option {
	return func(drv *Driver) { drv.observers = append(drv.observers, o) }
}

// Driver paces a sequencer. All sequencer access happens inside Run, so
// Tap and Interrupt are the only methods safe to call from other goroutines.
type Driver struct {
	seq       *sequencer.Sequencer
	sink      Sink
	delay     time.Duration
	logger    *slog.Logger
	observers []Observer
	taps      chan struct{}
	interrupt chan struct{}
}

func New(seq *sequencer.Sequencer, sink Sink, opts ...Option) *Driver {
	d := &Driver{
		seq:       seq,
		sink:      sink,
		delay:     DefaultDelay,
		taps:      make(chan struct{}, 8),
		interrupt: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.sink == nil {
		d.sink = SinkFunc(func([]chain.Frame) {})
	}
	return d
}

// Tap delivers one activate signal. Signals beyond the buffer are dropped.
func (d *Driver) Tap() {
	select {
	case d.taps <- struct{}{}:
	default:
	}
}

// Interrupt cuts the current inter-tick wait short. The redraw for that
// tick is skipped and ticking continues.
func (d *Driver) Interrupt() {
	select {
	case d.interrupt <- struct{}{}:
	default:
	}
}

// Run processes taps until ctx is done. An animation in flight always
// runs to completion unless the host shuts down.
func (d *Driver) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.taps:
			if !d.activate() {
				continue
			}
			// a tap during the final wait starts the next node
			for d.seq.Phase() == sequencer.Animating {
				if err := d.animate(ctx); err != nil {
					return err
				}
			}
		}
	}
}

func (d *Driver) activate() bool {
	started := d.seq.Trigger()
	for _, o := range d.observers {
		o.OnTap(started)
	}
	if started {
		d.logger.Debug("animation started", "node", d.seq.Current(), "dir", d.seq.Dir())
	} else {
		d.logger.Debug("tap ignored", "node", d.seq.Current())
	}
	return started
}

func (d *Driver) animate(ctx context.Context) error {
	// stale interrupts from the idle period do not apply to this run
	select {
	case <-d.interrupt:
	default:
	}

	d.sink.Redraw(d.seq.Frame())
	for {
		r := d.seq.Tick()
		for _, o := range d.observers {
			o.OnTick(r)
		}
		if r.Done {
			d.logger.Debug("node completed", "node", r.Index, "value", r.Value, "next", d.seq.Current(), "dir", d.seq.Dir())
		}

		interrupted, err := d.wait(ctx)
		if err != nil {
			return err
		}
		if interrupted {
			d.logger.Debug("tick wait interrupted, skipping redraw", "node", d.seq.Current())
			for _, o := range d.observers {
				o.OnSkip()
			}
		} else {
			d.sink.Redraw(d.seq.Frame())
		}

		if r.Status == sequencer.Stopped {
			return nil
		}
	}
}

func (d *Driver) wait(ctx context.Context) (bool, error) {
	timer := time.NewTimer(d.delay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-d.interrupt:
			return true, nil
		case <-d.taps:
			d.activate()
		case <-timer.C:
			return false, nil
		}
	}
}
