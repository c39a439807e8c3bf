// Package tui renders a propagation live in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/mzhv/oscil/internal/force"
	"github.com/mzhv/oscil/internal/motion"
)

const (
	chartWidth  = 64
	chartHeight = 12
	historyCap  = 600
	fps         = 60
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(34)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps a propagation at screen rate and charts its recent history.
type Model struct {
	name   string
	field  force.Field
	params motion.Params
	energy func(x, v float64) float64

	x, v, t float64
	steps   int

	xHist []float64
	vHist []float64
	eHist []float64

	// Spring-smoothed chart bounds, so the frame rescales without jumps.
	spring         harmonica.Spring
	boundLo, velLo float64
	boundHi, velHi float64

	stepsPerTick int
	running      bool
	done         bool
	showVel      bool
}

// NewModel prepares a live view. Callers should validate params beforehand;
// an empty horizon just renders as immediately done.
func NewModel(name string, fld force.Field, p motion.Params) Model {
	m := Model{
		name:         name,
		field:        fld,
		params:       p,
		x:            p.X0,
		v:            p.V0,
		xHist:        make([]float64, 0, historyCap),
		vHist:        make([]float64, 0, historyCap),
		spring:       harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.9),
		stepsPerTick: 1,
		running:      true,
	}
	if c, ok := fld.(force.Conservative); ok {
		m.energy = c.Energy
		m.eHist = make([]float64, 0, historyCap)
	}
	if p.H > 0 {
		if n := int(1 / (fps * p.H)); n > 1 {
			m.stepsPerTick = n
		}
	}
	m.boundLo, m.boundHi = p.X0-1, p.X0+1
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.done {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "v":
			m.showVel = !m.showVel
		case "+", "=":
			m.stepsPerTick *= 2
		case "-", "_":
			if m.stepsPerTick > 1 {
				m.stepsPerTick /= 2
			}
		}
		return m, nil

	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		return m, tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// advance runs at most stepsPerTick propagation steps, stopping at the
// horizon exactly where a batch run would.
func (m *Model) advance() {
	for i := 0; i < m.stepsPerTick; i++ {
		if m.t >= m.params.TMax {
			m.done = true
			m.running = false
			break
		}
		m.x, m.v = motion.Step(m.field.Accel, m.x, m.v, m.t, m.params.H)
		m.t += m.params.H
		m.steps++
	}

	m.record()
	m.smoothBounds()
}

func (m *Model) record() {
	m.xHist = append(m.xHist, m.x)
	if len(m.xHist) > historyCap {
		m.xHist = m.xHist[1:]
	}
	m.vHist = append(m.vHist, m.v)
	if len(m.vHist) > historyCap {
		m.vHist = m.vHist[1:]
	}
	if m.energy != nil {
		m.eHist = append(m.eHist, m.energy(m.x, m.v))
		if len(m.eHist) > historyCap {
			m.eHist = m.eHist[1:]
		}
	}
}

func (m *Model) smoothBounds() {
	series := m.xHist
	if m.showVel {
		series = m.vHist
	}
	if len(series) == 0 {
		return
	}

	lo, hi := series[0], series[0]
	for _, s := range series {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	m.boundLo, m.velLo = m.spring.Update(m.boundLo, m.velLo, lo)
	m.boundHi, m.velHi = m.spring.Update(m.boundHi, m.velHi, hi)
}

func (m *Model) reset() {
	m.x, m.v, m.t = m.params.X0, m.params.V0, 0
	m.steps = 0
	m.xHist = m.xHist[:0]
	m.vHist = m.vHist[:0]
	if m.eHist != nil {
		m.eHist = m.eHist[:0]
	}
	m.boundLo, m.boundHi = m.params.X0-1, m.params.X0+1
	m.velLo, m.velHi = 0, 0
	m.running = true
	m.done = false
}

func (m Model) View() string {
	series, caption := m.xHist, "position"
	if m.showVel {
		series, caption = m.vHist, "velocity"
	}

	chartView := graphStyle.Render("waiting for samples...")
	if len(series) > 1 {
		chart := asciigraph.Plot(series,
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption(caption),
			asciigraph.LowerBound(m.boundLo),
			asciigraph.UpperBound(m.boundHi),
		)
		chartView = graphStyle.Render(chart)
	}

	status := "RUNNING"
	switch {
	case m.done:
		status = "DONE"
	case !m.running:
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(status + "\n\n")
	if len(m.eHist) > 1 {
		chart := asciigraph.Plot(m.eHist, asciigraph.Height(4), asciigraph.Width(24), asciigraph.Caption("energy"))
		s.WriteString(chart + "\n\n")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3fs / %.3fs", m.t, m.params.TMax)) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("%+.4f", m.x)) + "\n")
	s.WriteString(labelStyle.Render("Velocity") + valueStyle.Render(fmt.Sprintf("%+.4f", m.v)) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%d steps/frame", m.stepsPerTick)) + "\n")
	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset V:View Q:Quit\n+/-:Speed"))
	statsView := statsStyle.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, chartView, statsView)
}
