// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package preview

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
)

// Runner owns a bubbletea program showing one indicator and runs work beside it.
type Runner struct {
	model    *Model
	program  *tea.Program
	broker   *Broker
	reporter *Reporter
}

// NewRunner creates the program. opts are passed to tea.NewProgram.
func NewRunner(title string, opts ...tea.ProgramOption) *Runner {
	model := NewModel(title)
	program := tea.NewProgram(model, opts...)

	return &Runner{
		model:    model,
		program:  program,
		broker:   NewBroker(program),
		reporter: NewReporter(program),
	}
}

// Broker returns the broker whose indicators render into this runner.
func (r *Runner) Broker() *Broker {
	return r.broker
}

// Reporter returns a progress.Reporter feeding the activity log.
func (r *Runner) Reporter() *Reporter {
	return r.reporter
}

// Model returns the model. Only read it after Run has returned.
func (r *Runner) Model() *Model {
	return r.model
}

// Run starts the program and calls work with a context that is cancelled if the user
// quits first. It returns once both have finished. The error from work takes priority.
func (r *Runner) Run(ctx context.Context, work func(ctx context.Context) error) error {
	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	workDone := make(chan error, 1)
	uiDone := make(chan error, 1)

	go func() {
		workDone <- work(workCtx)
	}()

	go func() {
		_, err := r.program.Run()
		uiDone <- err
	}()

	var workErr, uiErr error

	select {
	case workErr = <-workDone:
		r.program.Send(DoneMsg{Err: workErr})
		uiErr = <-uiDone

	case uiErr = <-uiDone:
		ctxlog.Debug(ctx, "preview", "detail", "program exited before work, cancelling")
		cancel()

		workErr = <-workDone
	}

	r.reporter.Close()

	if uiErr != nil && !errors.Is(uiErr, tea.ErrInterrupted) && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return errors.Join(workErr, uiErr)
	}

	return workErr
}
