// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package repl implements an interactive prompt that drives a progress handle by hand.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/tbprogress/cmd/tbprogress/backend"
	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
)

const prompt = "tbprogress> "

var (
	// ErrUsage is returned for a command with the wrong arguments.
	ErrUsage = errors.New("usage")
	// ErrUnknownCommand is returned for input that is not a command.
	ErrUnknownCommand = errors.New("unknown command, try help")
	// ErrPreviewUnsupported is returned when the preview backend is selected; both want the terminal.
	ErrPreviewUnsupported = errors.New("the repl cannot share the terminal with the preview backend")

	errQuit = errors.New("quit")
)

var help = map[string]string{
	"show":    "show                 open the gate",
	"hide":    "hide                 clear the indicator and close the gate",
	"state":   "state <name>         set the display mode (" + stateNames() + ")",
	"value":   "value <done> <total> set the fill ratio",
	"status":  "status               print the handle's cached state",
	"release": "release              give the indicator back",
	"help":    "help                 list commands",
	"quit":    "quit | exit          leave",
}

// ReplCmd opens an interactive prompt.
var ReplCmd = &cli.Command{
	Name:  "repl",
	Usage: "Drive the progress indicator interactively",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := backend.FromCommand(cmd)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		if cfg.Kind == backend.Preview {
			return cli.Exit(ErrPreviewUnsupported.Error(), 1)
		}

		return backend.Run(ctx, cfg, "tbprogress repl", func(ctx context.Context, p *taskbar.Progress) error {
			return loop(ctx, p, cmd.Writer)
		})
	},
}

func loop(ctx context.Context, p *taskbar.Progress, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	line := liner.NewLiner()
	defer line.Close() //nolint:errcheck

	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	fmt.Fprintf(out, "Window %s, attached: %t. Type help for commands, quit or Ctrl+C to leave.\n", //nolint:errcheck
		p.Window(), p.Attached())

	for ctx.Err() == nil {
		input, err := line.Prompt(prompt)

		switch {
		case errors.Is(err, liner.ErrPromptAborted), errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("reading input: %w", err)
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		line.AppendHistory(input)

		err = execLine(p, input, out)
		if errors.Is(err, errQuit) {
			return nil
		}

		if err != nil {
			fmt.Fprintln(out, err) //nolint:errcheck
			ctxlog.Debug(ctx, "repl", "input", input, "error", err)
		}
	}

	return ctx.Err() //nolint:wrapcheck
}

// execLine runs one command against p, writing any output to out.
// Requests that would violate the handle's contract are refused here instead of panicking.
func execLine(p *taskbar.Progress, input string, out io.Writer) error {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "show":
		p.Show()
	case "hide":
		p.Hide()
	case "release":
		p.Release()
	case "quit", "exit":
		return errQuit
	case "help":
		writeHelp(out)
	case "status":
		c, t := p.Value()
		fmt.Fprintf(out, "window=%s attached=%t active=%t state=%s value=%d/%d\n", //nolint:errcheck
			p.Window(), p.Attached(), p.Active(), p.State(), c, t)
	case "state":
		if len(args) != 1 {
			return fmt.Errorf("%w: %s", ErrUsage, help["state"])
		}

		s, err := taskbar.ParseState(args[0])
		if err != nil {
			return err //nolint:wrapcheck
		}

		p.SetState(s)
	case "value":
		c, t, err := parseRatio(args)
		if err != nil {
			return err
		}

		p.SetValue(c, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	return nil
}

func parseRatio(args []string) (uint64, uint64, error) {
	if len(args) != 2 { //nolint:mnd
		return 0, 0, fmt.Errorf("%w: %s", ErrUsage, help["value"])
	}

	c, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrUsage, help["value"])
	}

	t, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrUsage, help["value"])
	}

	if c > t {
		return 0, 0, fmt.Errorf("%w: %d is more than %d", ErrUsage, c, t)
	}

	return c, t, nil
}

func writeHelp(out io.Writer) {
	names := make([]string, 0, len(help))
	for k := range help {
		names = append(names, k)
	}

	sort.Strings(names)

	for _, n := range names {
		fmt.Fprintln(out, "  "+help[n]) //nolint:errcheck
	}
}

func complete(line string) []string {
	var out []string

	for k := range help {
		if strings.HasPrefix(k, strings.ToLower(line)) {
			out = append(out, k)
		}
	}

	sort.Strings(out)

	return out
}

func stateNames() string {
	names := make([]string, len(taskbar.States))
	for i, s := range taskbar.States {
		names[i] = s.String()
	}

	return strings.Join(names, ", ")
}
