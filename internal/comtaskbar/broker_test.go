// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package comtaskbar

import (
	"testing"

	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
	"github.com/stretchr/testify/assert"
)

func TestTbpFlag(t *testing.T) {
	tests := []struct {
		state taskbar.State
		flag  uintptr
	}{
		{taskbar.NoProgress, tbpfNoProgress},
		{taskbar.Indeterminate, tbpfIndeterminate},
		{taskbar.Normal, tbpfNormal},
		{taskbar.Paused, tbpfPaused},
		{taskbar.Error, tbpfError},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.flag, tbpFlag(tt.state))
		})
	}
}

func TestDefault_IsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestErrUnsupportedPlatform_IsUnavailable(t *testing.T) {
	assert.ErrorIs(t, ErrUnsupportedPlatform, taskbar.ErrUnavailable)
}
