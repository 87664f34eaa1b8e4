// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package preview

import (
	"sync"

	"github.com/matt-FFFFFF/tbprogress/internal/progress"
)

// Reporter forwards handle events to the program's activity log.
type Reporter struct {
	sender Sender
	closed bool
	mu     sync.RWMutex
}

// NewReporter creates a reporter sending to s.
func NewReporter(s Sender) *Reporter {
	return &Reporter{sender: s}
}

// Report implements progress.Reporter.
func (r *Reporter) Report(e progress.Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed || r.sender == nil {
		return
	}

	r.sender.Send(EventMsg{Event: e})
}

// Close implements progress.Reporter. Later reports are dropped.
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
}
