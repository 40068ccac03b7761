package chain

import (
	"errors"

	"github.com/san-kum/ntsquare/internal/anim"
)

// ErrEmptyChain is returned when a chain is constructed with no nodes.
var ErrEmptyChain = errors.New("chain: node count must be positive")

// Node is one slot in the stack. Index is fixed at construction.
type Node struct {
	Index int
	State anim.State
}

// Frame is the draw parameter pair handed to the render sink.
type Frame struct {
	Index int     `json:"index"`
	Scale float32 `json:"scale"`
}

// Chain is a fixed-length stack of nodes addressed by index.
type Chain struct {
	nodes []Node
}

func New(n int) (*Chain, error) {
	if n <= 0 {
		return nil, ErrEmptyChain
	}
	nodes := make([]Node, n)
	for i := range nodes {
		nodes[i].Index = i
	}
	return &Chain{nodes: nodes}, nil
}

func (c *Chain) Len() int { return len(c.nodes) }

// Node returns the node at index i. It panics if i is out of range.
func (c *Chain) Node(i int) *Node { return &c.nodes[i] }

// DrawSequence walks from index `from` back to 0 inclusive. Nodes past
// `from` are never included.
func (c *Chain) DrawSequence(from int) []Frame {
	if from >= len(c.nodes) {
		from = len(c.nodes) - 1
	}
	if from < 0 {
		return nil
	}
	frames := make([]Frame, 0, from+1)
	for i := from; i >= 0; i-- {
		frames = append(frames, Frame{Index: i, Scale: c.nodes[i].State.Scale})
	}
	return frames
}

// Neighbor returns the next node for dir == 1 and the previous node
// otherwise. At a chain boundary it returns (i, false).
func (c *Chain) Neighbor(i, dir int) (int, bool) {
	j := i - 1
	if dir == 1 {
		j = i + 1
	}
	if j < 0 || j >= len(c.nodes) {
		return i, false
	}
	return j, true
}

// States returns a copy of every node's animation state in index order.
func (c *Chain) States() []anim.State {
	states := make([]anim.State, len(c.nodes))
	for i := range c.nodes {
		states[i] = c.nodes[i].State
	}
	return states
}
