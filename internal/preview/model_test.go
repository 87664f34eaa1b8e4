// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package preview

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/tbprogress/internal/progress"
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m *Model, msgs ...tea.Msg) tea.Cmd {
	t.Helper()

	var cmd tea.Cmd

	for _, msg := range msgs {
		var next tea.Model

		next, cmd = m.Update(msg)
		require.Same(t, m, next)
	}

	return cmd
}

func TestModel_TracksIndicator(t *testing.T) {
	m := NewModel("test")
	assert.Contains(t, m.View(), "no indicator")

	update(t, m,
		AttachedMsg{Window: 0x10},
		StateMsg{Window: 0x10, State: taskbar.Normal},
		FillMsg{Window: 0x10, Completed: 3, Total: 10},
	)

	assert.True(t, m.Attached())
	assert.Equal(t, taskbar.Normal, m.State())

	c, tot := m.Fill()
	assert.Equal(t, uint64(3), c)
	assert.Equal(t, uint64(10), tot)

	v := m.View()
	assert.Contains(t, v, "window 0x10")
	assert.Contains(t, v, "state: normal")
	assert.Contains(t, v, "3/10 (30%)")

	update(t, m, DetachedMsg{Window: 0x10})
	assert.False(t, m.Attached())
	assert.Contains(t, m.View(), "no indicator")
}

func TestModel_FillPromotesToNormal(t *testing.T) {
	tests := []struct {
		name  string
		from  taskbar.State
		after taskbar.State
	}{
		{name: "no-progress", from: taskbar.NoProgress, after: taskbar.Normal},
		{name: "indeterminate", from: taskbar.Indeterminate, after: taskbar.Normal},
		{name: "paused", from: taskbar.Paused, after: taskbar.Paused},
		{name: "error", from: taskbar.Error, after: taskbar.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel("test")

			update(t, m, AttachedMsg{Window: 1})
			if tt.from != taskbar.NoProgress {
				update(t, m, StateMsg{Window: 1, State: tt.from})
			}

			update(t, m, FillMsg{Window: 1, Completed: 3, Total: 10})

			assert.Equal(t, tt.after, m.State())
			assert.Contains(t, m.View(), "3/10")
		})
	}
}

func TestModel_StatesRender(t *testing.T) {
	for _, st := range taskbar.States {
		t.Run(st.String(), func(t *testing.T) {
			m := NewModel("test")
			update(t, m, AttachedMsg{Window: 1}, StateMsg{Window: 1, State: st}, FillMsg{Window: 1, Completed: 1, Total: 2})

			v := m.View()
			assert.Contains(t, v, "state: "+st.String())

			if st == taskbar.NoProgress || st == taskbar.Indeterminate {
				assert.NotContains(t, v, "1/2")
			} else {
				assert.Contains(t, v, "1/2 (50%)")
			}
		})
	}
}

func TestModel_EventLogIsBounded(t *testing.T) {
	m := NewModel("test")

	for range logLines + 3 {
		update(t, m, EventMsg{Event: progress.Event{Type: progress.EventValueChanged}})
	}

	update(t, m, EventMsg{Event: progress.Event{Type: progress.EventRejected, Err: errors.New("boom")}})

	require.Len(t, m.log, logLines)
	assert.Equal(t, "rejected: boom", m.log[logLines-1])
}

func TestModel_DoneQuits(t *testing.T) {
	m := NewModel("test")

	cmd := update(t, m, DoneMsg{Err: errors.New("child exited 2")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.EqualError(t, m.Err(), "child exited 2")
	assert.Contains(t, m.View(), "failed: child exited 2")

	assert.Nil(t, update(t, m, tickMsg{}))
}

func TestModel_QuitKey(t *testing.T) {
	m := NewModel("test")

	cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowSizeClampsBar(t *testing.T) {
	m := NewModel("test")

	update(t, m, tea.WindowSizeMsg{Width: 4})
	assert.Equal(t, minBarWidth, m.bar.Width)

	update(t, m, tea.WindowSizeMsg{Width: 500})
	assert.Equal(t, maxBarWidth, m.bar.Width)
}

func TestMarquee(t *testing.T) {
	assert.Empty(t, marquee(0, 3))

	for frame := range 30 {
		s := marquee(10, frame)
		assert.Equal(t, 10, len([]rune(s)))
		assert.LessOrEqual(t, strings.Count(s, "█"), 2)
	}

	assert.Equal(t, "██░░░░░░░░", marquee(10, 2))
}
