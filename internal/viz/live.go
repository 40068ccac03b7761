package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ntsquare/internal/config"
	"github.com/san-kum/ntsquare/internal/sequencer"
)

const (
	width           = 60
	height          = 24
	statsWidth      = 42
	historyCapacity = 240
	minDelay        = time.Millisecond
)

type TickMsg time.Time

// Model hosts a sequencer: key presses and clicks are taps, TickMsg is
// the frame clock. Ticking stops as soon as a node settles.
type Model struct {
	cfg         *config.Config
	seq         *sequencer.Sequencer
	canvas      *Canvas
	themes      []Theme
	theme       int
	ticking     bool
	ticks       int
	completions int
	last        sequencer.Result
	history     []float64
	showHelp    bool
}

func NewModel(cfg *config.Config, seq *sequencer.Sequencer) Model {
	return Model{
		cfg:     cfg,
		seq:     seq,
		canvas:  NewCanvas(width, height),
		themes:  Themes(cfg.ForeColor, cfg.BackColor),
		history: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) tick() tea.Cmd {
	d := m.cfg.Delay
	if d < minDelay {
		d = minDelay
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles taps and advances the animation one step per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			return m.tap()
		case "r":
			m.seq.Reset()
			m.history = m.history[:0]
			m.completions = 0
			m.last = sequencer.Result{}
		case "t":
			m.theme = (m.theme + 1) % len(m.themes)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m.tap()
		}
	case tea.WindowSizeMsg:
		w := msg.Width - statsWidth - 4
		h := msg.Height - 2
		if w > 0 && h > 0 {
			m.canvas.Resize(w, h)
		}
	case TickMsg:
		if !m.ticking {
			return m, nil
		}
		idx := m.seq.Current()
		r := m.seq.Tick()
		m.ticks++
		m.record(idx)
		if r.Status == sequencer.Stopped {
			m.ticking = false
			if r.Done {
				m.completions++
				m.last = r
			}
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) tap() (tea.Model, tea.Cmd) {
	if m.ticking || !m.seq.Trigger() {
		return m, nil
	}
	m.ticking = true
	return m, m.tick()
}

// record appends the scale of node i to the chart history.
func (m *Model) record(i int) {
	m.history = append(m.history, float64(m.seq.NodeState(i).Scale))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// draw rasterises the current draw set onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	w, h := m.canvas.Dots()
	layout := m.cfg.Layout(float64(w), float64(h))
	for _, seg := range layout.Frame(m.seq.Frame()) {
		m.canvas.DrawSegment(seg)
	}
}

// View renders the canvas and the status panel.
func (m Model) View() string {
	m.draw()
	t := m.themes[m.theme]
	canvasView := canvasStyle(t).Render(m.canvas.String())

	snap := m.seq.Snapshot()
	var s strings.Builder
	s.WriteString(headerStyle(t).Render("NOTHING TO SQUARE") + "\n")
	if m.ticking {
		s.WriteString(StatusRunning.Render("ANIMATING") + "\n\n")
	} else {
		s.WriteString(StatusIdle.Render("IDLE") + "\n\n")
	}

	settled := make([]float32, len(snap.States))
	for i, st := range snap.States {
		settled[i] = st.PrevScale
	}
	s.WriteString(NodeStrip(t, settled, snap.Current) + "\n\n")

	arrow := "↓"
	if snap.Dir < 0 {
		arrow = "↑"
	}
	s.WriteString(labelStyle.Render("Node") + valueStyle.Render(fmt.Sprintf("%d/%d %s", snap.Current, len(snap.States), arrow)) + "\n")
	sc := snap.States[snap.Current].Scale
	s.WriteString(labelStyle.Render("Scale") + valueStyle.Render(fmt.Sprintf("%.3f ", sc)) + ProgressBar(t, float64(sc), 14) + "\n")
	s.WriteString(labelStyle.Render("Ticks") + valueStyle.Render(fmt.Sprintf("%d", m.ticks)) + "\n")
	s.WriteString(labelStyle.Render("Completed") + valueStyle.Render(fmt.Sprintf("%d", m.completions)) + "\n")
	if m.completions > 0 {
		s.WriteString(labelStyle.Render("Last") + valueStyle.Render(fmt.Sprintf("node %d -> %.0f", m.last.Index, m.last.Value)) + "\n")
	}
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(t.Name) + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(5),
			asciigraph.Width(30),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption("scale"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP/⏎/click:Tap R:Reset\nT:Theme ?:Help Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space/Enter - Tap (fold or unfold)  ║
║  Click       - Tap                   ║
║  R           - Reset all nodes       ║
║  T           - Cycle themes          ║
║  ?           - Toggle this help      ║
║  Q           - Quit                  ║
╚══════════════════════════════════════╝
` + "\n" + mainView
	}
	return mainView
}
