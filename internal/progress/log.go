// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
)

// LogListener writes every event to the context logger.
// Rejections are logged at debug level, everything else at info level.
type LogListener struct {
	logger *slog.Logger
}

// NewLogListener creates a LogListener using the logger stored in ctx.
func NewLogListener(ctx context.Context) *LogListener {
	return &LogListener{logger: ctxlog.Logger(ctx)}
}

// OnEvent implements Listener.
func (l *LogListener) OnEvent(event Event) {
	args := []any{
		"window", fmt.Sprintf("0x%x", event.Window),
		"state", event.State,
		"completed", event.Completed,
		"total", event.Total,
	}

	if event.Type == EventRejected {
		l.logger.Debug("taskbar "+event.Type.String(), append(args, "error", event.Err)...)
		return
	}

	l.logger.Info("taskbar "+event.Type.String(), args...)
}
