// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package taskbartest provides an in-memory taskbar broker that records every call.
package taskbartest

import (
	"sync"

	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
)

// Call operation names.
const (
	OpSetState = "set-state"
	OpSetFill  = "set-fill"
)

// Call is one remote indicator call.
type Call struct {
	Op        string
	Window    taskbar.Window
	State     taskbar.State
	Completed uint64
	Total     uint64
}

// Broker is a recording taskbar.Broker.
// The exported fields configure failures and must be set before the broker is used.
// It is safe for concurrent use so that automatic cleanup can be observed.
type Broker struct {
	// Status is returned by successful OpenSession calls.
	Status taskbar.SessionStatus
	// SessionErr makes OpenSession fail.
	SessionErr error
	// ActivateErr makes Activate fail.
	ActivateErr error
	// StateErr makes every SetState call fail.
	StateErr error
	// FillErr makes every SetFill call fail.
	FillErr error

	mu        sync.Mutex
	opened    int
	closed    int
	activated int
	released  int
	calls     []Call
}

var _ taskbar.Broker = (*Broker)(nil)

// NewBroker returns a broker that accepts everything.
func NewBroker() *Broker {
	return &Broker{}
}

// OpenSession implements taskbar.Broker.
func (b *Broker) OpenSession() (taskbar.SessionStatus, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.SessionErr != nil {
		return taskbar.SessionOpened, b.SessionErr
	}

	b.opened++

	return b.Status, nil
}

// CloseSession implements taskbar.Broker.
func (b *Broker) CloseSession() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed++
}

// Activate implements taskbar.Broker.
func (b *Broker) Activate(taskbar.Window) (taskbar.Indicator, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ActivateErr != nil {
		return nil, b.ActivateErr
	}

	b.activated++

	return &indicator{b: b}, nil
}

// Calls returns a copy of the indicator calls in the order they were made.
func (b *Broker) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]Call(nil), b.calls...)
}

// Sessions returns how many sessions were opened and closed.
func (b *Broker) Sessions() (opened, closed int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.opened, b.closed
}

// Activations returns how many indicators were created.
func (b *Broker) Activations() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.activated
}

// Releases returns how many times an indicator was released.
func (b *Broker) Releases() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.released
}

type indicator struct {
	b *Broker
}

func (i *indicator) SetState(w taskbar.Window, s taskbar.State) error {
	i.b.mu.Lock()
	defer i.b.mu.Unlock()

	i.b.calls = append(i.b.calls, Call{Op: OpSetState, Window: w, State: s})

	return i.b.StateErr
}

func (i *indicator) SetFill(w taskbar.Window, completed, total uint64) error {
	i.b.mu.Lock()
	defer i.b.mu.Unlock()

	i.b.calls = append(i.b.calls, Call{Op: OpSetFill, Window: w, Completed: completed, Total: total})

	return i.b.FillErr
}

func (i *indicator) Release() {
	i.b.mu.Lock()
	defer i.b.mu.Unlock()

	i.b.released++
}
