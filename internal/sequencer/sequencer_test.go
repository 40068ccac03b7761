package sequencer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ntsquare/internal/chain"
	"github.com/san-kum/ntsquare/internal/scale"
	"github.com/san-kum/ntsquare/internal/sequencer"
)

var cfg = sequencer.Config{
	Easing: scale.Easing{Gap: 0.05, Div: 0.51},
	Lines:  4,
	Steps:  2,
}

func newSequencer(n int) *sequencer.Sequencer {
	c, err := chain.New(n)
	Expect(err).NotTo(HaveOccurred())
	return sequencer.New(c, cfg)
}

// play triggers once and ticks until the sequencer stops.
func play(s *sequencer.Sequencer) sequencer.Result {
	Expect(s.Trigger()).To(BeTrue())
	for i := 0; i < 10000; i++ {
		r := s.Tick()
		if r.Status == sequencer.Stopped {
			return r
		}
	}
	Fail("animation never stopped")
	return sequencer.Result{}
}

var _ = Describe("Sequencer", func() {
	Context("when freshly constructed", func() {
		It("starts idle at node 0 moving forward", func() {
			s := newSequencer(5)
			Expect(s.Current()).To(Equal(0))
			Expect(s.Dir()).To(Equal(1))
			Expect(s.Phase()).To(Equal(sequencer.Idle))
		})

		It("reports stopped without completion when ticked idle", func() {
			s := newSequencer(5)
			r := s.Tick()
			Expect(r.Status).To(Equal(sequencer.Stopped))
			Expect(r.Done).To(BeFalse())
		})
	})

	Context("trigger", func() {
		It("ignores a second trigger before any tick", func() {
			s := newSequencer(5)
			Expect(s.Trigger()).To(BeTrue())
			Expect(s.Trigger()).To(BeFalse())
			Expect(s.Snapshot().States[0].Dir).To(Equal(float32(1)))
		})

		It("keeps ticking until the node settles", func() {
			s := newSequencer(5)
			Expect(s.Trigger()).To(BeTrue())
			Expect(s.Tick().Status).To(Equal(sequencer.Continue))
			Expect(s.Phase()).To(Equal(sequencer.Animating))
		})
	})

	Context("with five nodes", func() {
		It("walks forward, bounces at the end and walks back", func() {
			s := newSequencer(5)
			var visited []int
			var values []float32
			for i := 0; i < 10; i++ {
				r := play(s)
				Expect(r.Done).To(BeTrue())
				visited = append(visited, r.Index)
				values = append(values, r.Value)
			}
			Expect(visited).To(Equal([]int{0, 1, 2, 3, 4, 4, 3, 2, 1, 0}))
			Expect(values).To(Equal([]float32{1, 1, 1, 1, 1, 0, 0, 0, 0, 0}))
			Expect(s.Current()).To(Equal(0))
			Expect(s.Dir()).To(Equal(1))
		})

		It("flips direction only at the ends", func() {
			s := newSequencer(5)
			var dirs []int
			for i := 0; i < 5; i++ {
				play(s)
				dirs = append(dirs, s.Dir())
			}
			Expect(dirs).To(Equal([]int{1, 1, 1, 1, -1}))
		})

		It("keeps at most one node animating", func() {
			s := newSequencer(5)
			for i := 0; i < 7; i++ {
				Expect(s.Trigger()).To(BeTrue())
				for s.Tick().Status == sequencer.Continue {
					moving := 0
					for _, st := range s.Snapshot().States {
						if st.Dir != 0 {
							moving++
						}
					}
					Expect(moving).To(Equal(1))
				}
			}
		})

		It("draws only the current node and those behind it", func() {
			s := newSequencer(5)
			play(s)
			play(s)
			Expect(s.Current()).To(Equal(2))
			Expect(s.Frame()).To(Equal([]chain.Frame{
				{Index: 2, Scale: 0},
				{Index: 1, Scale: 1},
				{Index: 0, Scale: 1},
			}))

			Expect(s.Trigger()).To(BeTrue())
			s.Tick()
			frame := s.Frame()
			Expect(frame).To(HaveLen(3))
			Expect(frame[0].Scale).To(BeNumerically(">", 0))
		})
	})

	Context("with a single node", func() {
		It("flips direction on every completion and alternates the settled value", func() {
			s := newSequencer(1)
			for i := 0; i < 6; i++ {
				before := s.Dir()
				r := play(s)
				Expect(r.Index).To(Equal(0))
				if i%2 == 0 {
					Expect(r.Value).To(Equal(float32(1)))
				} else {
					Expect(r.Value).To(Equal(float32(0)))
				}
				Expect(s.Dir()).To(Equal(-before))
				Expect(s.Current()).To(Equal(0))
			}
		})
	})

	Context("reset", func() {
		It("returns every node to the folded state", func() {
			s := newSequencer(3)
			play(s)
			play(s)
			Expect(s.Trigger()).To(BeTrue())
			s.Tick()

			s.Reset()
			Expect(s.Current()).To(Equal(0))
			Expect(s.Dir()).To(Equal(1))
			Expect(s.Phase()).To(Equal(sequencer.Idle))
			for _, st := range s.Snapshot().States {
				Expect(st.Scale).To(BeZero())
				Expect(st.Dir).To(BeZero())
			}
		})
	})
})
