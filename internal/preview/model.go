// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package preview

import (
	"fmt"
	"strings"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
)

const (
	defaultBarWidth = 40
	minBarWidth     = 10
	maxBarWidth     = 80
	logLines        = 5
	tickInterval    = 80 * time.Millisecond
	marqueeDivisor  = 5
)

// Styles holds the tints used for each indicator state.
type Styles struct {
	Title         lipgloss.Style
	Muted         lipgloss.Style
	Indeterminate lipgloss.Style
	Normal        lipgloss.Style
	Paused        lipgloss.Style
	Error         lipgloss.Style
}

// NewStyles returns the default tints, chosen to resemble the shell's green, yellow and red bars.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Indeterminate: lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Paused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
	}
}

func (s *Styles) forState(st taskbar.State) lipgloss.Style {
	switch st {
	case taskbar.Indeterminate:
		return s.Indeterminate
	case taskbar.Normal:
		return s.Normal
	case taskbar.Paused:
		return s.Paused
	case taskbar.Error:
		return s.Error
	default:
		return s.Muted
	}
}

// barColour is the fill colour handed to the bubbles progress bar for each state.
var barColour = map[taskbar.State]string{
	taskbar.Normal: "10",
	taskbar.Paused: "11",
	taskbar.Error:  "9",
}

// Model is the bubbletea model mirroring one indicator.
type Model struct {
	title     string
	styles    *Styles
	bar       bprogress.Model
	window    taskbar.Window
	attached  bool
	state     taskbar.State
	completed uint64
	total     uint64
	log       []string
	frame     int
	done      bool
	err       error
	quitting  bool
}

// NewModel creates a model with the given title line.
func NewModel(title string) *Model {
	return &Model{
		title:  title,
		styles: NewStyles(),
		bar: bprogress.New(
			bprogress.WithoutPercentage(),
			bprogress.WithWidth(defaultBarWidth),
			bprogress.WithSolidFill(barColour[taskbar.Normal]),
		),
	}
}

// State returns the state last pushed to the model.
func (m *Model) State() taskbar.State {
	return m.state
}

// Fill returns the ratio last pushed to the model.
func (m *Model) Fill() (completed, total uint64) {
	return m.completed, m.total
}

// Attached reports whether an indicator is currently bound.
func (m *Model) Attached() bool {
	return m.attached
}

// Err returns the error carried by DoneMsg, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-4, minBarWidth), maxBarWidth) //nolint:mnd

	case AttachedMsg:
		m.attached = true
		m.window = msg.Window
		m.state = taskbar.NoProgress
		m.completed, m.total = 0, 0

	case StateMsg:
		m.window = msg.Window
		m.state = msg.State

	case FillMsg:
		m.window = msg.Window
		m.completed, m.total = msg.Completed, msg.Total

		// The shell shows a normal bar once a ratio is set on an empty or pulsing indicator.
		if m.state == taskbar.NoProgress || m.state == taskbar.Indeterminate {
			m.state = taskbar.Normal
		}

	case DetachedMsg:
		m.attached = false

	case EventMsg:
		line := msg.Event.Type.String()
		if msg.Event.Err != nil {
			line += ": " + msg.Event.Err.Error()
		}

		m.log = append(m.log, line)
		if len(m.log) > logLines {
			m.log = m.log[len(m.log)-logLines:]
		}

	case DoneMsg:
		m.done = true
		m.err = msg.Err

		return m, tea.Quit

	case tickMsg:
		if m.done || m.quitting {
			return m, nil
		}

		m.frame++

		return m, tick()
	}

	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title))

	if !m.window.IsZero() {
		b.WriteString(m.styles.Muted.Render("  window " + m.window.String()))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderBar())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	for _, l := range m.log {
		b.WriteString(m.styles.Muted.Render("  " + l))
		b.WriteString("\n")
	}

	if m.done && m.err != nil {
		b.WriteString(m.styles.Error.Render("failed: " + m.err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) renderBar() string {
	switch {
	case !m.attached:
		return m.styles.Muted.Render("no indicator")
	case m.state == taskbar.NoProgress:
		return m.styles.Muted.Render(strings.Repeat("·", m.bar.Width))
	case m.state == taskbar.Indeterminate:
		return m.styles.Indeterminate.Render(marquee(m.bar.Width, m.frame))
	}

	m.bar.FullColor = barColour[m.state]

	return m.bar.ViewAs(m.ratio())
}

func (m *Model) renderStatus() string {
	status := "state: " + m.state.String()

	if m.attached && m.total > 0 && m.state != taskbar.NoProgress && m.state != taskbar.Indeterminate {
		status += fmt.Sprintf("  %d/%d (%.0f%%)", m.completed, m.total, m.ratio()*100) //nolint:mnd
	}

	return m.styles.forState(m.state).Render(status)
}

func (m *Model) ratio() float64 {
	if m.total == 0 {
		return 0
	}

	return float64(m.completed) / float64(m.total)
}

// marquee draws a block sliding across width cells for the given animation frame.
func marquee(width, frame int) string {
	if width <= 0 {
		return ""
	}

	block := max(width/marqueeDivisor, 1)
	pos := frame % (width + block)

	cells := make([]rune, width)
	for i := range cells {
		cells[i] = '░'
		if i >= pos-block && i < pos {
			cells[i] = '█'
		}
	}

	return string(cells)
}
