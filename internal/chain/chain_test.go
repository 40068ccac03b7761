package chain

import (
	"errors"
	"testing"
)

func TestNew_InvalidCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := New(n); !errors.Is(err, ErrEmptyChain) {
			t.Errorf("New(%d): expected ErrEmptyChain, got %v", n, err)
		}
	}
}

func TestNew_Indices(t *testing.T) {
	c, err := New(5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if c.Len() != 5 {
		t.Fatalf("expected 5 nodes, got %d", c.Len())
	}
	for i := 0; i < c.Len(); i++ {
		if c.Node(i).Index != i {
			t.Errorf("node %d has index %d", i, c.Node(i).Index)
		}
		if !c.Node(i).State.Idle() {
			t.Errorf("node %d not idle at construction", i)
		}
	}
}

func TestDrawSequence(t *testing.T) {
	c, _ := New(5)
	c.Node(0).State.Scale = 1
	c.Node(1).State.Scale = 1
	c.Node(2).State.Scale = 0.4

	for k := 0; k < c.Len(); k++ {
		frames := c.DrawSequence(k)
		if len(frames) != k+1 {
			t.Fatalf("DrawSequence(%d): expected %d frames, got %d", k, k+1, len(frames))
		}
		for j, f := range frames {
			if f.Index != k-j {
				t.Errorf("DrawSequence(%d)[%d]: expected index %d, got %d", k, j, k-j, f.Index)
			}
			if f.Index > k {
				t.Errorf("DrawSequence(%d) included forward node %d", k, f.Index)
			}
		}
	}

	want := []Frame{{2, 0.4}, {1, 1}, {0, 1}}
	got := c.DrawSequence(2)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNeighbor(t *testing.T) {
	c, _ := New(3)
	tests := []struct {
		name   string
		i, dir int
		want   int
		ok     bool
	}{
		{"forward", 0, 1, 1, true},
		{"backward", 2, -1, 1, true},
		{"forward boundary", 2, 1, 2, false},
		{"backward boundary", 0, -1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Neighbor(tt.i, tt.dir)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Neighbor(%d, %d) = (%d, %v), want (%d, %v)", tt.i, tt.dir, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNeighbor_SingleNode(t *testing.T) {
	c, _ := New(1)
	for _, dir := range []int{1, -1} {
		if got, ok := c.Neighbor(0, dir); got != 0 || ok {
			t.Errorf("Neighbor(0, %d) = (%d, %v), want (0, false)", dir, got, ok)
		}
	}
}

func TestStates_Copy(t *testing.T) {
	c, _ := New(2)
	states := c.States()
	states[0].Scale = 0.7
	if c.Node(0).State.Scale != 0 {
		t.Error("States did not return a copy")
	}
}
