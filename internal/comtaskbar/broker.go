// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package comtaskbar

import (
	"context"
	"errors"
	"sync"

	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
)

var (
	// ErrUnsupportedPlatform is returned by brokers on platforms without ITaskbarList3.
	ErrUnsupportedPlatform = errors.Join(taskbar.ErrUnavailable, errors.New("taskbar progress requires 64-bit Windows"))
	// ErrActivate is returned when the shell taskbar object cannot be created.
	ErrActivate = errors.New("failed to activate ITaskbarList3")
	// ErrReleased is returned by an indicator after Release.
	ErrReleased = errors.New("taskbar indicator released")
)

// TBPFLAG values from shobjidl_core.h.
const (
	tbpfNoProgress    = 0x0
	tbpfIndeterminate = 0x1
	tbpfNormal        = 0x2
	tbpfError         = 0x4
	tbpfPaused        = 0x8
)

func tbpFlag(s taskbar.State) uintptr {
	switch s {
	case taskbar.Indeterminate:
		return tbpfIndeterminate
	case taskbar.Normal:
		return tbpfNormal
	case taskbar.Paused:
		return tbpfPaused
	case taskbar.Error:
		return tbpfError
	default:
		return tbpfNoProgress
	}
}

var (
	defaultOnce   sync.Once
	defaultBroker *Broker
)

// Default returns the process-wide broker. Its apartment lives until the process exits.
func Default() *Broker {
	defaultOnce.Do(func() {
		defaultBroker = NewBroker(context.Background())
	})

	return defaultBroker
}

var _ taskbar.Broker = (*Broker)(nil)
