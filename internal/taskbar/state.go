// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskbar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownState is returned when a state name cannot be parsed.
var ErrUnknownState = errors.New("unknown progress state")

// State is the display mode of the taskbar indicator.
type State int

const (
	// NoProgress shows no indicator at all.
	NoProgress State = iota
	// Indeterminate shows a pulsing bar with no known ratio.
	Indeterminate
	// Normal shows a proportional bar.
	Normal
	// Paused tints the bar to show the operation is paused.
	Paused
	// Error tints the bar to show the operation failed.
	Error
)

// States lists every State in display order.
var States = []State{NoProgress, Indeterminate, Normal, Paused, Error}

// String implements the Stringer interface for State.
func (s State) String() string {
	switch s {
	case NoProgress:
		return "no-progress"
	case Indeterminate:
		return "indeterminate"
	case Normal:
		return "normal"
	case Paused:
		return "paused"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the defined states.
func (s State) Valid() bool {
	return s >= NoProgress && s <= Error
}

// ratioless reports whether the state displays no concrete fill ratio.
// Setting a value promotes these states to Normal.
func (s State) ratioless() bool {
	return s == NoProgress || s == Indeterminate
}

// ParseState converts a state name into a State.
// Names are case-insensitive; "none" and "noprogress" are accepted for NoProgress.
func ParseState(name string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "no-progress", "noprogress", "none":
		return NoProgress, nil
	case "indeterminate":
		return Indeterminate, nil
	case "normal":
		return Normal, nil
	case "paused":
		return Paused, nil
	case "error":
		return Error, nil
	}

	return NoProgress, fmt.Errorf("%w: %q", ErrUnknownState, name)
}
