package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/ntsquare/internal/sequencer"
)

// Collector counts driver events. It implements the driver's Observer.
type Collector struct {
	taps        prometheus.Counter
	ignored     prometheus.Counter
	ticks       prometheus.Counter
	completions *prometheus.CounterVec
	skipped     prometheus.Counter
}

// NewCollector creates the counters and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		taps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ntsquare_taps_total",
			Help: "Total number of taps delivered to the sequencer",
		}),
		ignored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ntsquare_taps_ignored_total",
			Help: "Taps that arrived while a node was animating",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ntsquare_ticks_total",
			Help: "Total number of animation ticks",
		}),
		completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ntsquare_completions_total",
				Help: "Finished node animations by direction",
			},
			[]string{"direction"},
		),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ntsquare_redraws_skipped_total",
			Help: "Redraws dropped because the wait was interrupted",
		}),
	}
	reg.MustRegister(c.taps, c.ignored, c.ticks, c.completions, c.skipped)
	return c
}

func (c *Collector) OnTap(started bool) {
	c.taps.Inc()
	if !started {
		c.ignored.Inc()
	}
}

func (c *Collector) OnTick(r sequencer.Result) {
	c.ticks.Inc()
	if r.Done {
		c.completions.WithLabelValues(Direction(r.Value)).Inc()
	}
}

func (c *Collector) OnSkip() { c.skipped.Inc() }

// Direction names a completion by the value the node settled on.
func Direction(value float32) string {
	if value >= 1 {
		return "unfold"
	}
	return "fold"
}
