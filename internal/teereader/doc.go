// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teereader watches a child process' output as it streams past.
//
// LastLineTeeReader passes data through untouched while remembering the last complete
// line and the most recent progress figure seen in it, such as "12/40" or "37%".
// Carriage returns end a line, so redrawn progress lines are picked up too.
package teereader
