// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package play implements the command that plays a progress script.
package play

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/tbprogress/cmd/tbprogress/backend"
	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/tbprogress/internal/script"
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag = "file"
	varFlag  = "var"
)

// ErrInvalidVar is returned for a --var value without "=".
var ErrInvalidVar = errors.New("variables must be given as name=value")

// PlayCmd fetches a script and plays it against a progress handle.
var PlayCmd = &cli.Command{
	Name:  "play",
	Usage: "Play a progress script",
	Description: `Play drives the taskbar progress indicator from a script.

Scripts are YAML, or HCL when the file name ends in .hcl. Script URLs use Hashicorp's
go-getter syntax, so scripts can be fetched from git, HTTP, S3 and more.
See https://github.com/hashicorp/go-getter.

HCL scripts can refer to values given with --var as var.<name>.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      fileFlag,
			Aliases:   []string{"f"},
			Usage:     "URL or path of the script to play",
			Required:  true,
			TakesFile: true,
		},
		&cli.StringSliceFlag{
			Name:  varFlag,
			Usage: "Set an HCL variable, as name=value. May be repeated",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	cfg, err := backend.FromCommand(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	vars, err := parseVars(cmd.StringSlice(varFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	src := cmd.String(fileFlag)

	s, err := script.Fetch(ctx, src, vars)
	if err != nil {
		logger.Error("cannot load script", "src", src, "error", err)
		return cli.Exit(err.Error(), 1)
	}

	logger.Info("playing script", "name", s.Name, "steps", len(s.Steps), "backend", string(cfg.Kind))

	err = backend.Run(ctx, cfg, "tbprogress play "+s.Name, func(ctx context.Context, p *taskbar.Progress) error {
		return s.Play(ctx, p)
	})

	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("script interrupted", "name", s.Name)
		return cli.Exit("interrupted", 130) //nolint:mnd
	case err != nil:
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

func parseVars(in []string) (map[string]string, error) {
	vars := make(map[string]string, len(in))

	for _, kv := range in {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidVar, kv)
		}

		vars[strings.TrimSpace(k)] = v
	}

	return vars, nil
}
