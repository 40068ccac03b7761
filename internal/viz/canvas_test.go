package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/ntsquare/internal/shape"
)

func TestCanvas_SetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	w, h := c.Dots()
	if w != 8 || h != 8 {
		t.Fatalf("expected 8x8 dots, got %dx%d", w, h)
	}

	c.Set(0, 0)
	c.Set(7, 7)
	c.Set(-1, 3)
	c.Set(8, 0)
	if !c.IsSet(0, 0) || !c.IsSet(7, 7) {
		t.Error("expected corner dots to be set")
	}
	if c.Grid[0][0] != blank|0x1 {
		t.Errorf("unexpected cell rune %U", c.Grid[0][0])
	}
	if c.Grid[1][3] != blank|0x80 {
		t.Errorf("unexpected cell rune %U", c.Grid[1][3])
	}

	c.Clear()
	if c.IsSet(0, 0) || c.IsSet(7, 7) {
		t.Error("expected clear canvas")
	}
}

func TestCanvas_DrawSegment(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawSegment(shape.Segment{X1: 2, Y1: 3, X2: 2, Y2: 12})
	for y := 3; y <= 12; y++ {
		if !c.IsSet(2, y) {
			t.Errorf("expected dot at (2, %d)", y)
		}
	}
	if c.IsSet(3, 5) {
		t.Error("unexpected dot beside vertical line")
	}

	c.Clear()
	c.DrawSegment(shape.Segment{X1: 4.4, Y1: 4.4, X2: 4.4, Y2: 4.4})
	if !c.IsSet(4, 4) {
		t.Error("expected degenerate segment to light one dot")
	}
}

func TestCanvas_String(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(c.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for _, l := range lines {
		if len([]rune(l)) != 3 {
			t.Errorf("expected 3 cells, got %q", l)
		}
	}
}

func TestCanvas_Resize(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(1, 1)
	c.Resize(5, 0)
	if c.Width != 5 || c.Height != 1 {
		t.Errorf("unexpected size %dx%d", c.Width, c.Height)
	}
	if c.IsSet(1, 1) {
		t.Error("resize should clear")
	}
}
