// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
)

// Watch reads sigCh until it is closed or ctx is done.
// The first signal calls stop. A repeat of a signal already seen calls abort and returns.
// Either function may be nil. stop must not cancel ctx, or the repeat is never read;
// NotifyContext wires this up correctly.
func Watch(ctx context.Context, sigCh <-chan os.Signal, stop context.CancelFunc, abort func()) {
	seen := make(map[os.Signal]struct{})
	logger := ctxlog.Logger(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				logger.Warn("watchdog", "detail", "second signal, aborting", "signal", sig.String())

				if abort != nil {
					abort()
				}

				return
			}

			seen[sig] = struct{}{}

			logger.Info("watchdog", "detail", "stopping, repeat to abort", "signal", sig.String())

			if stop != nil {
				stop()
			}
		}
	}
}

// NotifyContext returns a copy of parent that is cancelled by the first signal on sigCh.
// A repeat of the same signal calls abort. The watcher outlives the returned context and
// ends when parent is done or sigCh is closed.
func NotifyContext(parent context.Context, sigCh <-chan os.Signal, abort func()) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	go Watch(parent, sigCh, cancel, abort)

	return ctx, cancel
}
