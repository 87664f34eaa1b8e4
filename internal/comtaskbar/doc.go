// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package comtaskbar is the Windows shell backend for taskbar progress.
//
// A broker session is a COM initialisation of a single-threaded apartment, the indicator is
// the shell's ITaskbarList3 object. Every COM call, including the final Release and
// CoUninitialize, is executed on one dedicated apartment thread, so handles may be driven
// and garbage collected from any goroutine.
//
// On other platforms the broker never grants a session and handles stay inert.
package comtaskbar
