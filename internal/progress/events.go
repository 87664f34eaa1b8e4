// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event describes one change to a taskbar indicator.
type Event struct {
	Window    uintptr   // Target window handle
	Type      EventType // What happened
	State     string    // Indicator state after the event
	Completed uint64    // Fill ratio numerator after the event
	Total     uint64    // Fill ratio denominator after the event
	Err       error     // Platform error, for EventRejected
	Timestamp time.Time // When the event occurred
}

// EventType represents the type of indicator event.
type EventType int

const (
	// EventShown indicates the gate was opened.
	EventShown EventType = iota
	// EventHidden indicates the indicator was reset and the gate closed.
	EventHidden
	// EventStateChanged indicates the platform accepted a new state.
	EventStateChanged
	// EventValueChanged indicates the platform accepted a new fill ratio.
	EventValueChanged
	// EventRejected indicates the platform refused a call; the cache is unchanged.
	EventRejected
	// EventReleased indicates the indicator and session were released.
	EventReleased
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventShown:
		return "shown"
	case EventHidden:
		return "hidden"
	case EventStateChanged:
		return "state-changed"
	case EventValueChanged:
		return "value-changed"
	case EventRejected:
		return "rejected"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Reporter is the interface for sending indicator events.
type Reporter interface {
	// Report sends an event. Implementations must not block the caller.
	Report(event Event)
	// Close signals that no more events will be sent and cleans up resources.
	Close()
}

// Listener receives indicator events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// NullReporter is a no-op implementation of Reporter.
type NullReporter struct{}

// Report implements Reporter.Report by doing nothing.
func (nr *NullReporter) Report(Event) {}

// Close implements Reporter.Close by doing nothing.
func (nr *NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return &NullReporter{}
}
