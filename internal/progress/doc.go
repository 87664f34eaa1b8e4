// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress carries change events out of a taskbar progress handle.
// A handle reports every change the platform accepted (and every call it rejected) so that
// loggers, previews and tests can follow the indicator without querying it.
package progress
