// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package apartment runs functions on a single, dedicated OS thread.
//
// Platform objects with thread affinity (such as single-threaded COM apartments) must be
// created, called and released on the thread that created them. Goroutines move between
// threads freely, so every such call is funnelled through an Apartment instead.
package apartment

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
)

// ErrClosed is returned by Do once the apartment has stopped.
var ErrClosed = errors.New("apartment closed")

type result struct {
	err      error
	panicked any
}

type call struct {
	fn  func() error
	res chan result
}

// Apartment owns one locked OS thread.
type Apartment struct {
	calls  chan call
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
}

// New starts an apartment. It stops when Close is called or ctx is cancelled.
func New(ctx context.Context) *Apartment {
	a := &Apartment{
		calls:  make(chan call),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}

	ready := make(chan struct{})
	go a.run(ctx, ready)
	<-ready

	return a
}

func (a *Apartment) run(ctx context.Context, ready chan<- struct{}) {
	defer close(a.exited)

	// The thread is never unlocked, so it exits with the goroutine and is not reused.
	runtime.LockOSThread()
	ctxlog.Debug(ctx, "apartment", "detail", "thread locked")
	close(ready)

	for {
		select {
		case c := <-a.calls:
			c.res <- invoke(c.fn)
		case <-a.done:
			ctxlog.Debug(ctx, "apartment", "detail", "closed")
			return
		case <-ctx.Done():
			ctxlog.Debug(ctx, "apartment", "detail", "context cancelled", "error", ctx.Err())
			return
		}
	}
}

func invoke(fn func() error) (r result) {
	defer func() {
		if p := recover(); p != nil {
			r.panicked = p
		}
	}()

	r.err = fn()

	return r
}

// Do runs fn on the apartment thread and waits for it to return.
// A panic in fn is re-raised in the caller. Do must not be called from inside fn.
func (a *Apartment) Do(fn func() error) error {
	c := call{fn: fn, res: make(chan result, 1)}

	select {
	case a.calls <- c:
	case <-a.exited:
		return ErrClosed
	}

	r := <-c.res
	if r.panicked != nil {
		panic(r.panicked)
	}

	return r.err
}

// Close stops the apartment and waits for its thread to exit. It is safe to call repeatedly.
func (a *Apartment) Close() {
	a.once.Do(func() {
		close(a.done)
	})
	<-a.exited
}
