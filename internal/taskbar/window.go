// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskbar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidWindow is returned when a window identifier cannot be parsed.
var ErrInvalidWindow = errors.New("invalid window identifier")

// Window is an opaque identifier of a top-level window, e.g. a Win32 HWND.
type Window uintptr

// NoWindow is the null window. A handle bound to it never issues remote calls.
const NoWindow Window = 0

// IsZero reports whether w is NoWindow.
func (w Window) IsZero() bool {
	return w == NoWindow
}

// String formats the window as a hexadecimal handle.
func (w Window) String() string {
	return fmt.Sprintf("0x%x", uintptr(w))
}

// ParseWindow parses a window identifier in decimal or 0x-prefixed hexadecimal form.
// An empty string yields NoWindow.
func ParseWindow(s string) (Window, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoWindow, nil
	}

	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return NoWindow, errors.Join(ErrInvalidWindow, err)
	}

	return Window(v), nil
}
