package driver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/san-kum/ntsquare/internal/chain"
	"github.com/san-kum/ntsquare/internal/scale"
	"github.com/san-kum/ntsquare/internal/sequencer"
)

type recorder struct {
	mu          sync.Mutex
	taps        []bool
	ticks       int
	completions []sequencer.Result
	skips       int
	redraws     int
	lastFrame   []chain.Frame
}

func (r *recorder) OnTap(started bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taps = append(r.taps, started)
}

func (r *recorder) OnTick(res sequencer.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
	if res.Done {
		r.completions = append(r.completions, res)
	}
}

func (r *recorder) OnSkip() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skips++
}

func (r *recorder) Redraw(frame []chain.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redraws++
	r.lastFrame = frame
}

func (r *recorder) frame() []chain.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastFrame
}

func (r *recorder) completed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.completions)
}

func newSequencer(t *testing.T, n int) *sequencer.Sequencer {
	t.Helper()
	c, err := chain.New(n)
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	return sequencer.New(c, sequencer.Config{
		Easing: scale.Easing{Gap: 0.05, Div: 0.51},
		Lines:  4,
		Steps:  2,
	})
}

func start(t *testing.T, d *Driver) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- d.Run(ctx) }()
	t.Cleanup(cancel)
	return cancel, errc
}

func TestDriver_TapRunsToCompletion(t *testing.T) {
	g := NewWithT(t)
	rec := &recorder{}
	d := New(newSequencer(t, 5), rec, WithDelay(0), WithObserver(rec))
	start(t, d)

	d.Tap()
	g.Eventually(rec.frame, time.Second).Should(Equal([]chain.Frame{{Index: 1, Scale: 0}, {Index: 0, Scale: 1}}))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	g.Expect(rec.completions).To(HaveLen(1))
	g.Expect(rec.completions[0].Index).To(Equal(0))
	g.Expect(rec.completions[0].Value).To(Equal(float32(1)))
	g.Expect(rec.redraws).To(Equal(rec.ticks + 1))
}

func TestDriver_TapWhileAnimatingIgnored(t *testing.T) {
	g := NewWithT(t)
	rec := &recorder{}
	d := New(newSequencer(t, 5), rec, WithDelay(time.Millisecond), WithObserver(rec))

	d.Tap()
	d.Tap()
	start(t, d)

	g.Eventually(rec.completed, 2*time.Second).Should(Equal(1))
	g.Consistently(rec.completed, 50*time.Millisecond).Should(Equal(1))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	g.Expect(rec.taps).To(Equal([]bool{true, false}))
}

func TestDriver_SuccessiveTapsAdvanceChain(t *testing.T) {
	g := NewWithT(t)
	rec := &recorder{}
	d := New(newSequencer(t, 2), rec, WithDelay(0), WithObserver(rec))
	start(t, d)

	for i := 1; i <= 4; i++ {
		d.Tap()
		g.Eventually(rec.completed, time.Second).Should(Equal(i))
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	var indices []int
	for _, c := range rec.completions {
		indices = append(indices, c.Index)
	}
	g.Expect(indices).To(Equal([]int{0, 1, 1, 0}))
}

type interruptingObserver struct {
	*recorder
	d *Driver
}

func (o *interruptingObserver) OnTick(res sequencer.Result) {
	o.recorder.OnTick(res)
	o.d.Interrupt()
}

func TestDriver_InterruptSkipsRedraw(t *testing.T) {
	g := NewWithT(t)
	rec := &recorder{}
	obs := &interruptingObserver{recorder: rec}
	// an uninterrupted wait would stall the test
	d := New(newSequencer(t, 1), rec, WithDelay(time.Hour), WithObserver(obs))
	obs.d = d
	start(t, d)

	d.Tap()
	g.Eventually(rec.completed, 5*time.Second).Should(Equal(1))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	g.Expect(rec.skips).To(Equal(rec.ticks))
	g.Expect(rec.redraws).To(Equal(1))
	g.Expect(rec.completions[0].Value).To(Equal(float32(1)))
}

func TestDriver_ContextCancel(t *testing.T) {
	g := NewWithT(t)
	d := New(newSequencer(t, 1), nil)
	cancel, errc := start(t, d)

	cancel()
	var err error
	g.Eventually(errc, time.Second).Should(Receive(&err))
	g.Expect(errors.Is(err, context.Canceled)).To(BeTrue())
}

type tappingObserver struct {
	*recorder
	d    *Driver
	left int
}

func (o *tappingObserver) OnTick(res sequencer.Result) {
	o.recorder.OnTick(res)
	if res.Done && o.left > 0 {
		o.left--
		o.d.Tap()
	}
}

func TestDriver_TapDuringFinalWaitContinues(t *testing.T) {
	g := NewWithT(t)
	rec := &recorder{}
	obs := &tappingObserver{recorder: rec, left: 1}
	d := New(newSequencer(t, 3), rec, WithDelay(time.Millisecond), WithObserver(obs))
	obs.d = d
	start(t, d)

	d.Tap()
	g.Eventually(rec.frame, 2*time.Second).Should(Equal([]chain.Frame{{Index: 2, Scale: 0}, {Index: 1, Scale: 1}, {Index: 0, Scale: 1}}))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	g.Expect(rec.taps).To(Equal([]bool{true, true}))
	g.Expect(rec.completions).To(HaveLen(2))
	g.Expect(rec.completions[1].Index).To(Equal(1))
}
