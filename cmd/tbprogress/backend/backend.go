// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package backend holds the flags shared by every tbprogress command and binds a
// taskbar progress handle to the backend they select.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/matt-FFFFFF/tbprogress/internal/comtaskbar"
	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/tbprogress/internal/preview"
	"github.com/matt-FFFFFF/tbprogress/internal/progress"
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
	"github.com/urfave/cli/v3"
)

// Flag names.
const (
	BackendFlag  = "backend"
	WindowFlag   = "window"
	SimulateFlag = "simulate"
	LogJSONFlag  = "log-json"
)

const (
	eventBuffer = 64
	// previewWindow stands in for a window when the preview backend has none to target.
	previewWindow taskbar.Window = 1
)

// Kind selects where progress is shown.
type Kind string

// Backends.
const (
	Shell   Kind = "shell"
	Preview Kind = "preview"
	None    Kind = "none"
)

// ErrUnknownBackend is returned for a --backend value that is not shell, preview or none.
var ErrUnknownBackend = errors.New("unknown backend")

// ParseKind validates a backend name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Shell, Preview, None:
		return k, nil
	}

	return "", fmt.Errorf("%w: %q (want shell, preview or none)", ErrUnknownBackend, s)
}

// Flags returns the global flags understood by every command.
// urfave/cli keeps parse state on flag values, so each command tree needs its own.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    BackendFlag,
			Aliases: []string{"b"},
			Usage:   "Where to show progress: shell (the Windows taskbar), preview (this terminal) or none",
			Value:   string(Shell),
			Sources: cli.EnvVars("TBPROGRESS_BACKEND"),
		},
		&cli.StringFlag{
			Name:    WindowFlag,
			Aliases: []string{"w"},
			Usage:   "Target window handle, decimal or 0x hex. Defaults to the foreground window",
			Sources: cli.EnvVars("TBPROGRESS_WINDOW"),
		},
		&cli.BoolFlag{
			Name:    SimulateFlag,
			Usage:   "Accept every call even when no indicator could be attached",
			Sources: cli.EnvVars("TBPROGRESS_SIMULATE"),
		},
		&cli.BoolFlag{
			Name:  LogJSONFlag,
			Usage: "Write logs as JSON",
		},
	}
}

// Config is the resolved form of the global flags.
type Config struct {
	Kind     Kind
	Window   taskbar.Window
	Simulate bool
}

// FromCommand resolves the global flags of cmd.
func FromCommand(cmd *cli.Command) (Config, error) {
	k, err := ParseKind(cmd.String(BackendFlag))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{Kind: k, Simulate: cmd.Bool(SimulateFlag)}

	if s := cmd.String(WindowFlag); s != "" {
		w, err := taskbar.ParseWindow(s)
		if err != nil {
			return Config{}, err //nolint:wrapcheck
		}

		cfg.Window = w

		return cfg, nil
	}

	switch k {
	case Shell:
		cfg.Window = comtaskbar.ForegroundWindow()
	case Preview:
		cfg.Window = previewWindow
	case None:
	}

	return cfg, nil
}

// Func is the body of a command, given a handle bound to the selected backend.
type Func func(ctx context.Context, p *taskbar.Progress) error

// Run binds a handle as cfg describes, calls fn with it and releases it afterwards.
// Handle events are logged; under the preview backend they also feed the activity log,
// and logging is buffered until the preview has finished drawing.
func Run(ctx context.Context, cfg Config, title string, fn Func) error {
	opts := []taskbar.Option{}
	if cfg.Simulate {
		opts = append(opts, taskbar.WithSimulation())
	}

	switch cfg.Kind {
	case Shell:
		if !cfg.Window.IsZero() && !comtaskbar.IsWindow(cfg.Window) {
			ctxlog.Warn(ctx, "not a window, progress will not be shown", "window", cfg.Window.String())
		}

		return bind(ctx, cfg.Window, append(opts, taskbar.WithBroker(comtaskbar.Default())), fn)

	case Preview:
		return runPreview(ctx, cfg, title, opts, fn)

	default:
		return bind(ctx, cfg.Window, opts, fn)
	}
}

func bind(ctx context.Context, w taskbar.Window, opts []taskbar.Option, fn Func) error {
	reporter := progress.NewChannelReporter(ctx, eventBuffer)
	reporter.Listen(progress.NewLogListener(ctx))

	defer reporter.Close()

	p := taskbar.New(ctx, w, append(opts, taskbar.WithReporter(reporter))...)
	defer p.Release()

	return fn(ctx, p)
}

func runPreview(ctx context.Context, cfg Config, title string, opts []taskbar.Option, fn Func) error {
	buf := &bytes.Buffer{}
	ctx = ctxlog.New(ctx, slog.New(ctxlog.NewConsoleHandler(
		&slog.HandlerOptions{Level: ctxlog.LevelVar},
		ctxlog.WithDestinationWriter(buf),
	)))

	runner := preview.NewRunner(title)

	err := runner.Run(ctx, func(ctx context.Context) error {
		p := taskbar.New(ctx, cfg.Window, append(opts,
			taskbar.WithBroker(runner.Broker()),
			taskbar.WithReporter(runner.Reporter()),
		)...)
		defer p.Release()

		return fn(ctx, p)
	})

	_, _ = buf.WriteTo(os.Stderr)

	return err
}
