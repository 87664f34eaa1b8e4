// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows || !(amd64 || arm64)

package comtaskbar

import (
	"context"

	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
)

// Broker never grants a session on this platform.
type Broker struct{}

// NewBroker returns a broker that always reports ErrUnsupportedPlatform.
func NewBroker(ctx context.Context) *Broker {
	ctxlog.Debug(ctx, "comtaskbar", "detail", "shell taskbar not supported on this platform")
	return &Broker{}
}

// Close is a no-op.
func (b *Broker) Close() {}

// OpenSession always fails with ErrUnsupportedPlatform.
func (b *Broker) OpenSession() (taskbar.SessionStatus, error) {
	return taskbar.SessionOpened, ErrUnsupportedPlatform
}

// CloseSession is a no-op.
func (b *Broker) CloseSession() {}

// Activate always fails with ErrUnsupportedPlatform.
func (b *Broker) Activate(taskbar.Window) (taskbar.Indicator, error) {
	return nil, ErrUnsupportedPlatform
}
