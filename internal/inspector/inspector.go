// Package inspector is a Bubble Tea viewer over a completed repair's
// action log, adapted from the teacher's internal/tui package (its
// bubbletea-driven selection/confirmation flow in run_selector.go and
// its WaveTheme/logo styling in theme.go). Where the teacher drives a
// form to launch a pipeline, inspector drives a scrollable list to
// review one.
package inspector

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
)

var (
	cyan  = lipgloss.Color("6")
	white = lipgloss.Color("7")
	muted = lipgloss.Color("244")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(cyan)
	stageStyle  = lipgloss.NewStyle().Foreground(cyan).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(white)
	posStyle    = lipgloss.NewStyle().Foreground(muted)
	cursorStyle = lipgloss.NewStyle().Foreground(cyan).Bold(true)
)

// Logo mirrors the teacher's WaveLogo header treatment, renamed to the
// tool it actually belongs to.
func Logo() string {
	logo := "┬┐┌─┐┌─┐┌┐┌┬─┐┌─┐┌┬┐┌─┐┌┬┐┬ ┬\n│├┘└─┐│ ││││├┬┘├┤ │││├┤  ││└┬┘\n┴└─└─┘└─┘┘└┘┴└─└─┘┴ ┴└─┘─┴┘ ┴ "
	return headerStyle.Margin(1, 0, 1, 2).Render(logo)
}

type keyMap struct {
	Up, Down, Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k")),
		Down: key.NewBinding(key.WithKeys("down", "j")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
	}
}

// Model is the Bubble Tea model for browsing a []action.Record list.
type Model struct {
	records  []action.Record
	cursor   int
	vp       viewport.Model
	keys     keyMap
	quitting bool
}

// New builds an inspector Model over a completed repair's action log.
func New(records []action.Record) Model {
	vp := viewport.New(80, 20)
	m := Model{records: records, vp: vp, keys: defaultKeyMap()}
	m.syncViewport()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 4
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		}
		m.syncViewport()
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	header := headerStyle.Render(fmt.Sprintf("Repair actions (%d)", len(m.records)))
	footer := posStyle.Render("↑/↓ move · q quit")
	return header + "\n\n" + m.vp.View() + "\n" + footer
}

func (m *Model) syncViewport() {
	if len(m.records) == 0 {
		m.vp.SetContent(descStyle.Render("no repair actions were recorded"))
		return
	}
	var lines []string
	for i, r := range m.records {
		line := formatRecord(r)
		if i == m.cursor {
			line = cursorStyle.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
}

func formatRecord(r action.Record) string {
	stage := stageStyle.Render(string(r.Stage))
	desc := descStyle.Render(r.Action)
	if r.Position == nil {
		return fmt.Sprintf("%-22s %s", stage, desc)
	}
	pos := posStyle.Render(fmt.Sprintf("@rune %d", *r.Position))
	return fmt.Sprintf("%-22s %s %s", stage, desc, pos)
}

// Run launches the inspector as a full Bubble Tea program.
func Run(records []action.Record) error {
	p := tea.NewProgram(New(records))
	_, err := p.Run()
	return err
}
