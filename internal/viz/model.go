package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/YashShettigar/Basic-Planet-Simulation/internal/config"
	"github.com/YashShettigar/Basic-Planet-Simulation/internal/orbit"
	"github.com/YashShettigar/Basic-Planet-Simulation/internal/view"
)

const (
	fps        = 60
	statsWidth = 36

	defaultCols = 80
	defaultRows = 30
	minCols     = 20
	minRows     = 8
)

type TickMsg time.Time

// Model is the live terminal view of one scenario.
type Model struct {
	scenario *config.Config
	sim      *orbit.Simulation
	view     *view.Viewport
	canvas   *Canvas
	colors   []string
	radii    []int

	running  bool
	showHelp bool
	err      error
}

func NewModel(scenario *config.Config) (Model, error) {
	sim, err := scenario.Build()
	if err != nil {
		return Model{}, err
	}

	colors := make([]string, len(scenario.Bodies))
	radii := make([]int, len(scenario.Bodies))
	for i, b := range scenario.Bodies {
		colors[i] = b.Color
		radii[i] = 1
		if b.Size >= 30 {
			radii[i] = 2
		}
	}

	m := Model{
		scenario: scenario,
		sim:      sim,
		colors:   view.Colors(colors),
		radii:    radii,
		running:  true,
	}
	m.resize(defaultCols, defaultRows)
	return m, nil
}

// resize rebuilds the canvas for a cols×rows cell area. The base scale is
// chosen so the scenario frames the same way it does in a window.
func (m *Model) resize(cols, rows int) {
	cols, rows = max(cols, minCols), max(rows, minRows)
	m.canvas = NewCanvas(cols, rows)
	pw, ph := m.canvas.Pixels()
	base := m.scenario.Scale / config.AU * float64(pw) / config.DefaultWidth

	if m.view == nil {
		m.view = view.NewViewport(pw, ph, base, fps)
		return
	}
	m.view.Width, m.view.Height, m.view.Base = pw, ph, base
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case ".":
			if !m.running && m.err == nil {
				m.step()
			}
		case "+", "=":
			m.view.ZoomIn()
		case "-", "_":
			m.view.ZoomOut()
		case "r":
			m.reset()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width-statsWidth-2, msg.Height-2)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.view.Update()
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	if err := m.sim.Step(); err != nil {
		m.err = err
		m.running = false
	}
}

func (m *Model) reset() {
	sim, err := m.scenario.Build()
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.sim = sim
	m.err = nil
	m.running = true
	m.view.Reset()
}

// Simulation exposes the model's simulation.
func (m Model) Simulation() *orbit.Simulation { return m.sim }

func (m Model) Err() error { return m.err }

func (m *Model) draw() {
	m.canvas.Clear()
	for i, b := range m.sim.Registry().Bodies() {
		m.canvas.Pen(view.Fade(m.colors[i], 0.4))
		pts := b.Trail()
		for j := 1; j < len(pts); j++ {
			x0, y0 := m.view.ToScreen(pts[j-1])
			x1, y1 := m.view.ToScreen(pts[j])
			if !m.view.Visible(x0, y0) && !m.view.Visible(x1, y1) {
				continue
			}
			m.canvas.DrawLine(int(x0), int(y0), int(x1), int(y1))
		}
	}
	for i, b := range m.sim.Registry().Bodies() {
		m.canvas.Pen(m.colors[i])
		x, y := m.view.ToScreen(b.Pos)
		m.canvas.FillCircle(int(x), int(y), m.radii[i])
	}
}

// View renders the canvas and the side panel.
func (m Model) View() string {
	m.draw()

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scenario.Name)) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render("HALTED") + "\n")
	case m.running:
		s.WriteString(runningStyle.Render("RUNNING") + "\n")
	default:
		s.WriteString(pausedStyle.Render("PAUSED") + "\n")
	}
	s.WriteString("\n")

	days := m.sim.Elapsed() / config.Day
	s.WriteString(labelStyle.Render("Tick  ") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Tick())) + "\n")
	s.WriteString(labelStyle.Render("Days  ") + valueStyle.Render(fmt.Sprintf("%.1f", days)) + "\n")
	s.WriteString(labelStyle.Render("Zoom  ") + valueStyle.Render(fmt.Sprintf("%+d", m.view.Zoom())) + "\n")

	s.WriteString("\n" + labelStyle.Render("DISTANCE TO ANCHOR") + "\n")
	anchor := m.sim.Registry().AnchorIndex()
	for i, b := range m.sim.Registry().Bodies() {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors[i])).Render("●")
		if i == anchor {
			s.WriteString(fmt.Sprintf("%s %-8s %s\n", dot, b.Name, labelStyle.Render("anchor")))
			continue
		}
		km := b.DistanceToAnchor() / 1000
		s.WriteString(fmt.Sprintf("%s %-8s %s\n", dot, b.Name, valueStyle.Render(fmt.Sprintf("%.0f km", km))))
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("\nSP:Pause .:Step R:Reset\n+/-:Zoom ?:Help Q:Quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.Render()),
		statsStyle.Render(s.String()))
	if m.showHelp {
		return helpBox.Render(helpText) + "\n" + main
	}
	return main
}

const helpText = `KEYBOARD SHORTCUTS

Space  Pause/Resume simulation
.      Advance one tick while paused
+ / -  Zoom in/out (±3 levels)
R      Reset to initial state
?      Toggle this help
Q      Quit`

// Run starts the terminal program and blocks until it exits.
func Run(scenario *config.Config) error {
	m, err := NewModel(scenario)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
