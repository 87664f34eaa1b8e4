// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "shell", want: Shell},
		{in: " Preview ", want: Preview},
		{in: "NONE", want: None},
		{in: "taskbar", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownBackend)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, k)
		})
	}
}

func parseFlags(t *testing.T, args ...string) (Config, error) {
	t.Helper()

	var (
		cfg    Config
		cfgErr error
	)

	cmd := &cli.Command{
		Name:  "test",
		Flags: Flags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, cfgErr = FromCommand(cmd)
			return nil
		},
	}

	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))

	return cfg, cfgErr
}

func TestFromCommand(t *testing.T) {
	cfg, err := parseFlags(t, "--backend", "none", "--window", "0x10", "--simulate")
	require.NoError(t, err)
	assert.Equal(t, Config{Kind: None, Window: 0x10, Simulate: true}, cfg)

	cfg, err = parseFlags(t, "--backend", "preview")
	require.NoError(t, err)
	assert.Equal(t, previewWindow, cfg.Window)

	cfg, err = parseFlags(t, "--backend", "none")
	require.NoError(t, err)
	assert.Equal(t, taskbar.NoWindow, cfg.Window)
}

func TestFromCommand_Errors(t *testing.T) {
	_, err := parseFlags(t, "--backend", "bogus")
	assert.ErrorIs(t, err, ErrUnknownBackend)

	_, err = parseFlags(t, "--backend", "none", "--window", "nope")
	assert.ErrorIs(t, err, taskbar.ErrInvalidWindow)
}

func TestFromCommand_EnvironmentSources(t *testing.T) {
	t.Setenv("TBPROGRESS_BACKEND", "none")
	t.Setenv("TBPROGRESS_WINDOW", "42")
	t.Setenv("TBPROGRESS_SIMULATE", "true")

	// An earlier parse must not leave state behind that hides the environment.
	_, err := parseFlags(t, "--backend", "preview")
	require.NoError(t, err)

	cfg, err := parseFlags(t)
	require.NoError(t, err)
	assert.Equal(t, Config{Kind: None, Window: 42, Simulate: true}, cfg)
}

func TestFlags_AreFreshValues(t *testing.T) {
	a, b := Flags(), Flags()
	require.Len(t, b, len(a))

	for i := range a {
		assert.NotSame(t, a[i], b[i])
	}
}

func TestRun_NoneBackendSimulates(t *testing.T) {
	var seen *taskbar.Progress

	err := Run(context.Background(), Config{Kind: None, Simulate: true}, "test", func(_ context.Context, p *taskbar.Progress) error {
		seen = p

		p.Show()
		p.SetValue(1, 2)

		assert.Equal(t, taskbar.Normal, p.State())
		assert.False(t, p.Attached())

		return nil
	})
	require.NoError(t, err)
	assert.False(t, seen.OwnsSession())
}

func TestRun_ReturnsBodyError(t *testing.T) {
	boom := errors.New("boom")

	err := Run(context.Background(), Config{Kind: None}, "test", func(context.Context, *taskbar.Progress) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
