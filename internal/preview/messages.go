// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package preview

import (
	"time"

	"github.com/matt-FFFFFF/tbprogress/internal/progress"
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
)

// AttachedMsg is sent when an indicator is activated for a window.
type AttachedMsg struct {
	Window taskbar.Window
}

// StateMsg carries a SetState call.
type StateMsg struct {
	Window taskbar.Window
	State  taskbar.State
}

// FillMsg carries a SetFill call.
type FillMsg struct {
	Window    taskbar.Window
	Completed uint64
	Total     uint64
}

// DetachedMsg is sent when the indicator is released.
type DetachedMsg struct {
	Window taskbar.Window
}

// EventMsg wraps a committed handle change for the activity log.
type EventMsg struct {
	Event progress.Event
}

// DoneMsg tells the model the work has finished.
type DoneMsg struct {
	Err error
}

type tickMsg time.Time
