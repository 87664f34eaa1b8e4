// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package comtaskbar

import "github.com/matt-FFFFFF/tbprogress/internal/taskbar"

// ForegroundWindow returns NoWindow; there is no shell taskbar to attach to.
func ForegroundWindow() taskbar.Window {
	return taskbar.NoWindow
}

// IsWindow reports false for every window.
func IsWindow(taskbar.Window) bool {
	return false
}
