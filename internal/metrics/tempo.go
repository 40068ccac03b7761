package metrics

import "github.com/san-kum/ntsquare/internal/sequencer"

// Tempo averages how many ticks a node animation takes.
type Tempo struct {
	name        string
	current     int
	total       int
	completions int
}

func NewTempo() *Tempo {
	return &Tempo{name: "ticks_per_completion"}
}

func (t *Tempo) Name() string { return t.name }

func (t *Tempo) OnTap(bool) {}

func (t *Tempo) OnSkip() {}

func (t *Tempo) OnTick(r sequencer.Result) {
	t.current++
	if r.Done {
		t.total += t.current
		t.completions++
		t.current = 0
	}
}

func (t *Tempo) Value() float64 {
	if t.completions == 0 {
		return 0
	}
	return float64(t.total) / float64(t.completions)
}

func (t *Tempo) Reset() {
	t.current = 0
	t.total = 0
	t.completions = 0
}
