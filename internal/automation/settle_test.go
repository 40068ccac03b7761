package automation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/san-kum/ntsquare/internal/chain"
	"github.com/san-kum/ntsquare/internal/config"
	"github.com/san-kum/ntsquare/internal/driver"
	"github.com/san-kum/ntsquare/internal/sequencer"
)

// finalInterrupter cuts the wait after every completing tick, so the
// settled frame is never drawn.
type finalInterrupter struct {
	mu    sync.Mutex
	d     *driver.Driver
	skips int
}

func (f *finalInterrupter) OnTap(bool) {}

func (f *finalInterrupter) OnTick(r sequencer.Result) {
	if r.Done {
		f.d.Interrupt()
	}
}

func (f *finalInterrupter) OnSkip() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.skips++
}

func newDriven(t *testing.T, nodes int, opts ...driver.Option) (*Settler, *driver.Driver) {
	t.Helper()
	cfg := config.DefaultConfig()
	c, err := chain.New(nodes)
	if err != nil {
		t.Fatal(err)
	}
	seq := sequencer.New(c, cfg.Sequencer())
	settler := NewSettler(seq, nil)
	// observers run in order; the settler goes last so it signals after them
	opts = append(opts, driver.WithDelay(time.Millisecond), driver.WithObserver(settler))
	return settler, driver.New(seq, settler, opts...)
}

func runDriver(t *testing.T, d *driver.Driver) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestSettler_SkippedFinalRedraw(t *testing.T) {
	obs := &finalInterrupter{}
	settler, d := newDriven(t, 2, driver.WithObserver(obs))
	obs.d = d
	runDriver(t, d)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := TapScript(2).Play(ctx, d, settler.Settled(), discard()); err != nil {
		t.Fatalf("play did not finish: %v", err)
	}

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if obs.skips != 2 {
		t.Errorf("expected both final redraws skipped, got %d", obs.skips)
	}
}

func TestSettler_SignalsAfterFinalRedraw(t *testing.T) {
	settler, d := newDriven(t, 1)
	runDriver(t, d)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := TapScript(1).Play(ctx, d, settler.Settled(), discard()); err != nil {
		t.Fatalf("play did not finish: %v", err)
	}
	select {
	case <-settler.Settled():
		t.Error("expected a single settle signal per animation")
	default:
	}
}
