package storage

import (
	"github.com/san-kum/ntsquare/internal/chain"
	"github.com/san-kum/ntsquare/internal/sequencer"
)

// Sample is one redraw: the pointer position and every node's scale.
type Sample struct {
	Tick    int       `json:"tick"`
	Current int       `json:"current"`
	Dir     int       `json:"dir"`
	Scales  []float32 `json:"scales"`
}

// Recorder captures a driver run. It is both the driver's sink and an
// observer, and must only be used from the driving goroutine.
type Recorder struct {
	seq         *sequencer.Sequencer
	samples     []Sample
	taps        int
	ignored     int
	ticks       int
	completions int
	skipped     int
}

func NewRecorder(seq *sequencer.Sequencer) *Recorder {
	return &Recorder{seq: seq}
}

func (r *Recorder) Redraw(_ []chain.Frame) {
	snap := r.seq.Snapshot()
	scales := make([]float32, len(snap.States))
	for i, st := range snap.States {
		scales[i] = st.Scale
	}
	r.samples = append(r.samples, Sample{
		Tick:    r.ticks,
		Current: snap.Current,
		Dir:     snap.Dir,
		Scales:  scales,
	})
}

func (r *Recorder) OnTap(started bool) {
	r.taps++
	if !started {
		r.ignored++
	}
}

func (r *Recorder) OnTick(res sequencer.Result) {
	r.ticks++
	if res.Done {
		r.completions++
	}
}

func (r *Recorder) OnSkip() { r.skipped++ }

func (r *Recorder) Samples() []Sample { return r.samples }

// Fill copies the recorded counters into meta.
func (r *Recorder) Fill(meta *RunMetadata) {
	meta.Taps = r.taps
	meta.IgnoredTaps = r.ignored
	meta.Ticks = r.ticks
	meta.Completions = r.completions
	meta.Skipped = r.skipped
}

// Series returns one scale series per node, indexed by sample.
func Series(trace []Sample) [][]float64 {
	if len(trace) == 0 {
		return nil
	}
	nodes := len(trace[0].Scales)
	out := make([][]float64, nodes)
	for i := range out {
		out[i] = make([]float64, 0, len(trace))
	}
	for _, smp := range trace {
		for i := 0; i < nodes && i < len(smp.Scales); i++ {
			out[i] = append(out[i], float64(smp.Scales[i]))
		}
	}
	return out
}
