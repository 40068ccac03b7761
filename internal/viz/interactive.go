package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ntsquare/internal/chain"
	"github.com/san-kum/ntsquare/internal/config"
	"github.com/san-kum/ntsquare/internal/sequencer"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8a65")).Bold(true)
	subStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5722")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8a65")).Bold(true)
)

const (
	stateMenu = iota
	stateLive
)

// menu lets the user pick a preset before the animation starts.
type menu struct {
	state   int
	cursor  int
	presets []string
	live    Model
	err     error
}

func newMenu() menu {
	return menu{presets: config.ListPresets()}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		live, err := NewLive(config.GetPreset(m.presets[m.cursor]))
		if err != nil {
			m.err = err
			return m, nil
		}
		m.live, m.state = live, stateLive
		return m, m.live.Init()
	}
	return m, nil
}

func (m menu) View() string {
	if m.state == stateLive {
		return m.live.View()
	}
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("NTSQUARE") + "\n    " + subStyle.Render("nothing to square") + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := fmt.Sprintf("%d node", config.Presets[name].Nodes)
		if config.Presets[name].Nodes != 1 {
			desc += "s"
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-10s", name)), cursorStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", itemStyle.Render(fmt.Sprintf("  %-10s", name)), itemStyle.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusIdle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyStyle.Render("j/k") + subStyle.Render(" navigate  ") + keyStyle.Render("enter") + subStyle.Render(" select  ") + keyStyle.Render("q") + subStyle.Render(" quit") + "\n")
	return b.String()
}

// NewLive validates cfg and builds a live model over a fresh chain.
func NewLive(cfg *config.Config) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	c, err := chain.New(cfg.Nodes)
	if err != nil {
		return Model{}, err
	}
	return NewModel(cfg, sequencer.New(c, cfg.Sequencer())), nil
}

// RunInteractive starts the TUI. A nil cfg opens the preset menu first.
func RunInteractive(cfg *config.Config) error {
	var root tea.Model = newMenu()
	if cfg != nil {
		live, err := NewLive(cfg)
		if err != nil {
			return err
		}
		root = live
	}
	_, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
