// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskbar

import "errors"

var (
	// ErrUnavailable is returned by brokers that cannot provide a taskbar indicator.
	ErrUnavailable = errors.New("taskbar indicator unavailable")
	// ErrNoIndicator is returned when a call reaches a handle that holds no indicator.
	ErrNoIndicator = errors.New("no taskbar indicator attached")
)

// SessionStatus is the non-error outcome of Broker.OpenSession.
type SessionStatus int

const (
	// SessionOpened means the call created the session for this thread.
	SessionOpened SessionStatus = iota
	// SessionAlreadyOpen means a session already existed. It still has to be closed.
	SessionAlreadyOpen
)

// String implements the Stringer interface for SessionStatus.
func (s SessionStatus) String() string {
	switch s {
	case SessionOpened:
		return "opened"
	case SessionAlreadyOpen:
		return "already-open"
	default:
		return "unknown"
	}
}

// Broker is the platform's capability broker.
// Every successful OpenSession, including SessionAlreadyOpen, must be paired with exactly one
// CloseSession.
type Broker interface {
	OpenSession() (SessionStatus, error)
	CloseSession()
	// Activate creates the indicator object for a window.
	Activate(w Window) (Indicator, error)
}

// Indicator is the remote taskbar object. A nil error means the platform accepted the call.
type Indicator interface {
	SetState(w Window, s State) error
	SetFill(w Window, completed, total uint64) error
	Release()
}

// unavailableBroker never grants a session.
type unavailableBroker struct{}

func (unavailableBroker) OpenSession() (SessionStatus, error) {
	return SessionOpened, ErrUnavailable
}

func (unavailableBroker) CloseSession() {}

func (unavailableBroker) Activate(Window) (Indicator, error) {
	return nil, ErrUnavailable
}

// detached stands in for a missing indicator.
// With accept set it reports success so the state machine keeps working without a platform.
type detached struct {
	accept bool
}

func (d detached) SetState(Window, State) error {
	if d.accept {
		return nil
	}

	return ErrNoIndicator
}

func (d detached) SetFill(Window, uint64, uint64) error {
	if d.accept {
		return nil
	}

	return ErrNoIndicator
}

func (detached) Release() {}
