// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package execute implements the command that runs a child process and mirrors its
// progress on the taskbar.
package execute

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/matt-FFFFFF/tbprogress/cmd/tbprogress/backend"
	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
	"github.com/matt-FFFFFF/tbprogress/internal/teereader"
	"github.com/urfave/cli/v3"
)

const (
	intervalFlag    = "interval"
	defaultInterval = 200 * time.Millisecond
	usageExitCode   = 2
	startExitCode   = 127
)

var (
	// ErrNoCommand is returned when nothing follows "--".
	ErrNoCommand = errors.New("no command given, usage: tbprogress exec -- <command> [args]")
	// ErrStart is returned when the child cannot be started.
	ErrStart = errors.New("failed to start command")
)

// ExecCmd runs a child process under a progress indicator.
var ExecCmd = &cli.Command{
	Name:  "exec",
	Usage: "Run a command and mirror its progress on the taskbar",
	Description: `Exec runs the command, passing its output through. The indicator is indeterminate
until a line of output carries a figure such as "12/40" or "37%", which is then mirrored.
A failing command leaves the indicator in the error state; a successful one hides it.
The command's exit code is returned.`,
	ArgsUsage: "-- <command> [args...]",
	Flags: []cli.Flag{
		&cli.DurationFlag{
			Name:  intervalFlag,
			Usage: "How often to look for new progress in the output",
			Value: defaultInterval,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return cli.Exit(ErrNoCommand.Error(), usageExitCode)
	}

	cfg, err := backend.FromCommand(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	stdout, stderr := cmd.Writer, cmd.ErrWriter
	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	// The preview owns the terminal while it runs; pass the child's output on afterwards.
	if cfg.Kind == backend.Preview {
		outBuf, errBuf := &bytes.Buffer{}, &bytes.Buffer{}

		defer func(stdout, stderr io.Writer) {
			_, _ = outBuf.WriteTo(stdout)
			_, _ = errBuf.WriteTo(stderr)
		}(stdout, stderr)

		stdout, stderr = outBuf, errBuf
	}

	var code int

	err = backend.Run(ctx, cfg, "tbprogress exec "+args[0], func(ctx context.Context, p *taskbar.Progress) error {
		var runErr error

		code, runErr = Run(ctx, p, Options{
			Name:     args[0],
			Args:     args[1:],
			Stdout:   stdout,
			Stderr:   stderr,
			Interval: cmd.Duration(intervalFlag),
		})

		return runErr
	})

	switch {
	case errors.Is(err, ErrStart):
		return cli.Exit(err.Error(), startExitCode)
	case err != nil:
		return cli.Exit(err.Error(), 1)
	case code != 0:
		return cli.Exit("", code)
	}

	return nil
}

// Options describe the child to run.
type Options struct {
	Name     string
	Args     []string
	Dir      string
	Env      []string
	Stdout   io.Writer
	Stderr   io.Writer
	Interval time.Duration
}

// Run starts the child, mirrors its progress onto p until it exits and returns its exit code.
// A non-zero exit is not an error; failing to start, or ctx ending first, is.
func Run(ctx context.Context, p *taskbar.Progress, opts Options) (int, error) {
	logger := ctxlog.Logger(ctx).With("command", opts.Name)

	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}

	c := exec.CommandContext(ctx, opts.Name, opts.Args...)
	c.Dir = opts.Dir
	c.Env = opts.Env

	outPipe, err := c.StdoutPipe()
	if err != nil {
		return -1, errors.Join(ErrStart, err)
	}

	errPipe, err := c.StderrPipe()
	if err != nil {
		return -1, errors.Join(ErrStart, err)
	}

	outTee := teereader.NewLastLineTeeReader(outPipe)
	errTee := teereader.NewLastLineTeeReader(errPipe)

	if err := c.Start(); err != nil {
		return -1, errors.Join(ErrStart, err)
	}

	logger.Debug("started", "pid", c.Process.Pid)

	p.Show()
	p.SetState(taskbar.Indeterminate)

	copied := make(chan struct{})

	go func() {
		defer close(copied)

		var wg sync.WaitGroup

		wg.Add(2) //nolint:mnd

		go drain(&wg, orDiscard(opts.Stdout), outTee)
		go drain(&wg, orDiscard(opts.Stderr), errTee)

		wg.Wait()
	}()

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

wait:
	for {
		select {
		case <-ticker.C:
			mirror(p, outTee, errTee)
		case <-copied:
			break wait
		}
	}

	waitErr := c.Wait()

	outTee.Flush()
	errTee.Flush()
	mirror(p, outTee, errTee)

	if ctx.Err() != nil {
		p.SetState(taskbar.Error)
		return -1, ctx.Err() //nolint:wrapcheck
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			p.SetState(taskbar.Error)
			return -1, waitErr //nolint:wrapcheck
		}

		logger.Info("command failed", "exit_code", exitErr.ExitCode(), "last_line", errTee.LastLine(120)) //nolint:mnd
		p.SetState(taskbar.Error)

		return exitErr.ExitCode(), nil
	}

	logger.Debug("command succeeded")
	p.Hide()

	return 0, nil
}

// mirror forwards the latest figure, preferring stdout over stderr.
func mirror(p *taskbar.Progress, readers ...*teereader.LastLineTeeReader) {
	for _, r := range readers {
		if ratio, ok := r.Ratio(); ok {
			p.SetValue(ratio.Completed, ratio.Total)
			return
		}
	}
}

func drain(wg *sync.WaitGroup, dst io.Writer, src io.Reader) {
	defer wg.Done()

	_, _ = io.Copy(dst, src)
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}

	return w
}
