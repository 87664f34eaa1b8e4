// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskbar

import "github.com/matt-FFFFFF/tbprogress/internal/progress"

type options struct {
	broker   Broker
	reporter progress.Reporter
	simulate bool
}

// Option implements a functional options pattern for New.
type Option func(*options)

// WithBroker sets the platform broker. Without it the handle is always inert.
func WithBroker(b Broker) Option {
	return func(o *options) {
		if b != nil {
			o.broker = b
		}
	}
}

// WithReporter sends an event for every accepted change and every rejected call.
func WithReporter(r progress.Reporter) Option {
	return func(o *options) {
		if r != nil {
			o.reporter = r
		}
	}
}

// WithSimulation makes a handle without an indicator accept every call,
// so its state machine keeps running where no platform is present.
func WithSimulation() Option {
	return func(o *options) {
		o.simulate = true
	}
}
