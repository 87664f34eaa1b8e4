// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskbar

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/tbprogress/internal/progress"
)

// lease holds everything a Progress must give back to the platform.
// It is kept apart from Progress so the automatic cleanup can run once the handle is unreachable.
type lease struct {
	broker      Broker
	indicator   Indicator
	window      Window
	ownsSession bool
}

// release returns the indicator and the session. Calling it again is a no-op.
func (l *lease) release() bool {
	released := false

	if l.indicator != nil {
		l.indicator.Release()
		l.indicator = nil
		l.window = NoWindow
		released = true
	}

	if l.ownsSession {
		l.broker.CloseSession()
		l.ownsSession = false
		released = true
	}

	return released
}

// Progress is the taskbar progress indicator of one window.
//
// It starts hidden: nothing is forwarded to the platform until Show is called.
// Release must be called when the handle is no longer needed; an abandoned handle is
// released by the garbage collector eventually, but not promptly.
type Progress struct {
	lease     *lease
	fallback  Indicator
	state     State
	completed uint64
	total     uint64
	active    bool

	reporter progress.Reporter
	logger   *slog.Logger

	cleanup    runtime.Cleanup
	hasCleanup bool
}

// New binds a progress handle to window w.
//
// A NoWindow, a broker session that cannot be opened, or an indicator that cannot be
// activated all produce a usable handle that never reaches the platform. When the session
// opened but activation failed, the handle still owns the session and closes it on Release.
func New(ctx context.Context, w Window, opts ...Option) *Progress {
	o := options{
		broker:   unavailableBroker{},
		reporter: progress.NewNullReporter(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	logger := ctxlog.Logger(ctx).With("window", w.String())

	p := &Progress{
		lease:    &lease{broker: o.broker},
		fallback: detached{accept: o.simulate},
		state:    NoProgress,
		reporter: o.reporter,
		logger:   logger,
	}

	if w.IsZero() {
		logger.Debug("taskbar progress disabled", "detail", "no window")
		return p
	}

	status, err := o.broker.OpenSession()
	if err != nil {
		logger.Debug("taskbar progress disabled", "detail", "broker session unavailable", "error", err)
		return p
	}

	p.lease.ownsSession = true
	p.cleanup = runtime.AddCleanup(p, func(l *lease) {
		if l.release() {
			logger.Warn("taskbar progress released by garbage collector", "detail", "Release was not called")
		}
	}, p.lease)
	p.hasCleanup = true

	indicator, err := o.broker.Activate(w)
	if err != nil || indicator == nil {
		logger.Debug("taskbar progress disabled", "detail", "indicator activation failed", "session", status.String(), "error", err)
		return p
	}

	p.lease.indicator = indicator
	p.lease.window = w
	logger.Debug("taskbar progress attached", "session", status.String())

	return p
}

// Show opens the gate. It does not contact the platform; the next state or value request
// is the first one forwarded.
func (p *Progress) Show() {
	if p.active {
		return
	}

	p.active = true
	p.report(progress.EventShown, nil)
}

// Hide resets the indicator to NoProgress and closes the gate.
// Later state and value requests are ignored until Show is called.
func (p *Progress) Hide() {
	p.SetState(NoProgress)

	if !p.active {
		return
	}

	p.active = false
	p.report(progress.EventHidden, nil)
}

// SetState requests a new display mode.
// The request is dropped when the gate is closed or the state is already displayed.
// A rejected request leaves the cached state unchanged.
func (p *Progress) SetState(s State) {
	if !s.Valid() {
		panic(fmt.Sprintf("invalid taskbar progress state %d", int(s)))
	}

	if s == p.state || !p.active {
		return
	}

	if err := p.indicator().SetState(p.lease.window, s); err != nil {
		p.reject("state", err)
		return
	}

	p.state = s
	p.report(progress.EventStateChanged, nil)
}

// SetValue requests a fill ratio of completed out of total.
//
// completed must not exceed total; a larger value is a programming error and panics.
// An accepted value moves NoProgress and Indeterminate to Normal. Paused and Error are kept
// until SetState changes them.
func (p *Progress) SetValue(completed, total uint64) {
	if completed > total {
		panic(fmt.Sprintf("task progress is over 100%%: completed %d out of %d", completed, total))
	}

	if !p.active {
		return
	}

	if completed == p.completed && total == p.total && !p.state.ratioless() {
		return
	}

	if err := p.indicator().SetFill(p.lease.window, completed, total); err != nil {
		p.reject("value", err)
		return
	}

	p.completed, p.total = completed, total
	if p.state.ratioless() {
		p.state = Normal
	}

	p.report(progress.EventValueChanged, nil)
}

// Release gives the indicator and the broker session back to the platform.
// It is safe to call any number of times.
func (p *Progress) Release() {
	if p.hasCleanup {
		p.cleanup.Stop()
		p.hasCleanup = false
	}

	w := p.lease.window
	if p.lease.release() {
		p.logger.Debug("taskbar progress released")
		p.reporter.Report(p.event(progress.EventReleased, w, nil))
	}
}

// Close implements io.Closer. It calls Release and never fails.
func (p *Progress) Close() error {
	p.Release()
	return nil
}

// State returns the last state the platform accepted.
func (p *Progress) State() State {
	return p.state
}

// Value returns the last fill ratio the platform accepted.
func (p *Progress) Value() (completed, total uint64) {
	return p.completed, p.total
}

// Active reports whether requests are currently forwarded.
func (p *Progress) Active() bool {
	return p.active
}

// Window returns the target window, or NoWindow when no indicator is attached.
func (p *Progress) Window() Window {
	return p.lease.window
}

// Attached reports whether the handle holds a platform indicator.
func (p *Progress) Attached() bool {
	return p.lease.indicator != nil
}

// OwnsSession reports whether the handle still has to close a broker session.
func (p *Progress) OwnsSession() bool {
	return p.lease.ownsSession
}

func (p *Progress) indicator() Indicator {
	if p.lease.indicator != nil {
		return p.lease.indicator
	}

	return p.fallback
}

func (p *Progress) reject(call string, err error) {
	p.logger.Debug("taskbar call rejected", "call", call, "error", err)
	p.report(progress.EventRejected, err)
}

func (p *Progress) report(t progress.EventType, err error) {
	p.reporter.Report(p.event(t, p.lease.window, err))
}

func (p *Progress) event(t progress.EventType, w Window, err error) progress.Event {
	return progress.Event{
		Window:    uintptr(w),
		Type:      t,
		State:     p.state.String(),
		Completed: p.completed,
		Total:     p.total,
		Err:       err,
		Timestamp: time.Now(),
	}
}
