// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package script loads and plays progress scripts.
//
// A script is a named list of steps, each of which drives a taskbar progress handle:
// show, hide, state, value, wait, ramp and release. Scripts are written in YAML or,
// for files ending in .hcl, in HCL where `var.<name>` refers to values supplied on the
// command line. Remote scripts are fetched with go-getter.
package script
