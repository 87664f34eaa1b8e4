// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package script

import (
	"context"
	"time"

	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
)

// Target is what a script drives. *taskbar.Progress satisfies it.
type Target interface {
	Show()
	Hide()
	SetState(s taskbar.State)
	SetValue(completed, total uint64)
	Release()
}

var _ Target = (*taskbar.Progress)(nil)

// Play runs the script against t, step by step.
// It stops early, returning ctx.Err(), when ctx is done during a wait or ramp.
// The script is validated first and nothing is played if it is invalid.
func (s *Script) Play(ctx context.Context, t Target) error {
	prog, err := s.compile()
	if err != nil {
		return err
	}

	logger := ctxlog.Logger(ctx).With("script", s.Name)

	for i, in := range prog {
		if err := ctx.Err(); err != nil {
			return err //nolint:wrapcheck
		}

		logger.Debug("step", "index", i+1, "action", string(in.action))

		if err := in.run(ctx, t); err != nil {
			return err
		}
	}

	return nil
}

func (in instruction) run(ctx context.Context, t Target) error {
	switch in.action {
	case ActionShow:
		t.Show()
	case ActionHide:
		t.Hide()
	case ActionRelease:
		t.Release()
	case ActionState:
		t.SetState(in.state)
	case ActionValue:
		t.SetValue(in.completed, in.total)
	case ActionWait:
		return sleep(ctx, in.duration)
	case ActionRamp:
		return in.ramp(ctx, t)
	}

	return nil
}

func (in instruction) ramp(ctx context.Context, t Target) error {
	c := in.completed

	for {
		t.SetValue(c, in.total)

		if c == in.total {
			return nil
		}

		if err := sleep(ctx, in.interval); err != nil {
			return err
		}

		if in.total-c <= in.increment {
			c = in.total
		} else {
			c += in.increment
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	case <-timer.C:
		return nil
	}
}
