// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package taskbar mirrors application progress onto the taskbar button of a single window.
//
// The Progress handle is a thin gate in front of a platform Broker. It acquires a broker
// session and an Indicator once, caches the last state and fill ratio the indicator accepted,
// drops redundant or gated requests, and releases everything exactly once.
//
// Taskbar decoration is best effort: when the platform capability is missing the handle
// degrades to an inert object and every call becomes a no-op.
//
// A Progress is not safe for concurrent use. The owning event loop must serialise calls.
package taskbar
