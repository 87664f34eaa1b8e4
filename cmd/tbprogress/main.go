// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the tbprogress command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/tbprogress"
	"github.com/matt-FFFFFF/tbprogress/cmd/tbprogress/backend"
	"github.com/matt-FFFFFF/tbprogress/cmd/tbprogress/execute"
	"github.com/matt-FFFFFF/tbprogress/cmd/tbprogress/play"
	"github.com/matt-FFFFFF/tbprogress/cmd/tbprogress/repl"
	"github.com/matt-FFFFFF/tbprogress/cmd/tbprogress/states"
	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/tbprogress/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const interruptedExitCode = 130

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		play.PlayCmd,
		repl.ReplCmd,
		execute.ExecCmd,
		states.StatesCmd,
	},
	Flags:     backend.Flags(),
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "tbprogress",
	Description: `tbprogress drives the progress indicator shown on a window's taskbar button.
It can play scripted progress, mirror the progress of another command, or be driven
by hand. On systems without a shell taskbar, --backend preview draws the indicator
in the terminal instead.`,
	Usage:     "tbprogress exec -- robocopy src dst /mir",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
	Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cmd.Bool(backend.LogJSONFlag) {
			ctx = ctxlog.New(ctx, ctxlog.JSONLogger)
		}

		return ctx, nil
	},
}

func main() {
	base := ctxlog.New(context.Background(), ctxlog.DefaultLogger)

	sigCh := signalbroker.New(base)
	defer signalbroker.Stop(sigCh)

	ctx, cancel := signalbroker.NotifyContext(base, sigCh, func() {
		os.Exit(interruptedExitCode)
	})
	defer cancel()

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", tbprogress.Version, tbprogress.Commit)

	if err := rootCmd.Run(ctx, os.Args); err != nil {
		ctxlog.Logger(ctx).Error("command failed", "error", err)
		cancel()
		os.Exit(1) //nolint:gocritic
	}
}
