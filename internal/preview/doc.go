// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package preview renders a taskbar progress indicator in the terminal.
//
// Broker implements taskbar.Broker on top of a bubbletea program, so a taskbar.Progress
// handle can be driven and watched on any operating system. Runner owns the program
// and runs a piece of work alongside it.
package preview
