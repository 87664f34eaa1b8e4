// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package comtaskbar

import (
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
	"golang.org/x/sys/windows"
)

// ForegroundWindow returns the window the user is currently working in.
func ForegroundWindow() taskbar.Window {
	return taskbar.Window(windows.GetForegroundWindow())
}

// IsWindow reports whether w identifies an existing window.
func IsWindow(w taskbar.Window) bool {
	if w.IsZero() {
		return false
	}

	return windows.IsWindow(windows.HWND(w))
}
