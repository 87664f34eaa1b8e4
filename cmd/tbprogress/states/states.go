// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package states implements the command that lists indicator states and script actions.
package states

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/tbprogress/internal/script"
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
	"github.com/urfave/cli/v3"
)

var descriptions = map[taskbar.State]string{
	taskbar.NoProgress:    "nothing is shown",
	taskbar.Indeterminate: "busy, with no known ratio",
	taskbar.Normal:        "fill ratio shown normally",
	taskbar.Paused:        "fill ratio shown as paused",
	taskbar.Error:         "fill ratio shown as failed",
}

// StatesCmd prints the accepted state names.
var StatesCmd = &cli.Command{
	Name:  "states",
	Usage: "List indicator states and script actions",
	Action: func(_ context.Context, cmd *cli.Command) error {
		out := cmd.Writer
		if out == nil {
			out = os.Stdout
		}

		return write(out)
	},
}

func write(out io.Writer) error {
	if _, err := fmt.Fprintln(out, "States:"); err != nil {
		return err //nolint:wrapcheck
	}

	for _, s := range taskbar.States {
		if _, err := fmt.Fprintf(out, "  %-14s %s\n", s, descriptions[s]); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if _, err := fmt.Fprintln(out, "\nScript actions:"); err != nil {
		return err //nolint:wrapcheck
	}

	for _, a := range script.Actions {
		if _, err := fmt.Fprintf(out, "  %s\n", a); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}
