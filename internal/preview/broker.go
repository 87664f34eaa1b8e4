// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package preview

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
)

var (
	// ErrNoSender is returned by Activate when the broker has nowhere to render.
	ErrNoSender = errors.New("preview: no program to render into")
	// ErrReleased is returned by indicator calls made after Release.
	ErrReleased = errors.New("preview: indicator released")
)

// Sender accepts bubbletea messages. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Broker grants sessions and indicators that forward every call to a Sender.
// Sessions are reference counted the same way the shell's are: the first open
// reports SessionOpened and later ones SessionAlreadyOpen.
type Broker struct {
	sender   Sender
	mu       sync.Mutex
	sessions int
}

// NewBroker returns a broker rendering into s.
func NewBroker(s Sender) *Broker {
	return &Broker{sender: s}
}

// OpenSession implements taskbar.Broker.
func (b *Broker) OpenSession() (taskbar.SessionStatus, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sessions++
	if b.sessions > 1 {
		return taskbar.SessionAlreadyOpen, nil
	}

	return taskbar.SessionOpened, nil
}

// CloseSession implements taskbar.Broker.
func (b *Broker) CloseSession() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sessions > 0 {
		b.sessions--
	}
}

// Sessions returns the number of sessions currently open.
func (b *Broker) Sessions() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.sessions
}

// Activate implements taskbar.Broker.
func (b *Broker) Activate(w taskbar.Window) (taskbar.Indicator, error) {
	if b.sender == nil {
		return nil, ErrNoSender
	}

	b.sender.Send(AttachedMsg{Window: w})

	return &indicator{sender: b.sender, window: w}, nil
}

type indicator struct {
	sender   Sender
	window   taskbar.Window
	mu       sync.Mutex
	released bool
}

func (i *indicator) send(msg tea.Msg) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.released {
		return ErrReleased
	}

	i.sender.Send(msg)

	return nil
}

func (i *indicator) SetState(w taskbar.Window, s taskbar.State) error {
	return i.send(StateMsg{Window: w, State: s})
}

func (i *indicator) SetFill(w taskbar.Window, completed, total uint64) error {
	return i.send(FillMsg{Window: w, Completed: completed, Total: total})
}

func (i *indicator) Release() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.released {
		return
	}

	i.released = true
	i.sender.Send(DetachedMsg{Window: i.window})
}
