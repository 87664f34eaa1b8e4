// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsColorEnabled(t *testing.T) {
	t.Setenv(NoColor, "1")
	assert.False(t, isColorEnabled(), "Expected color output to be disabled")

	t.Setenv(ForceColor, "1")
	assert.False(t, isColorEnabled(), "Expected color output to be disabled as NO_COLOR is still set")

	t.Setenv(NoColor, "")
	assert.True(t, isColorEnabled(), "Expected color output to be enabled as FORCE_COLOR is set and NO_COLOR is unset")
}

func TestApply(t *testing.T) {
	assert.Equal(t, "\033[31mred\033[0m", Apply("red", FgRed))
	assert.Equal(t, "\033[1;93mhi\033[0m", Apply("hi", Bold, FgHiYellow))
	assert.Equal(t, "plain", Apply("plain"))
}

func TestColorize_FollowsDetection(t *testing.T) {
	orig := enabled
	defer func() { enabled = orig }()

	enabled = false
	assert.Equal(t, "text", Colorize("text", FgGreen))

	enabled = true
	assert.Equal(t, Apply("text", FgGreen), Colorize("text", FgGreen))
}

func BenchmarkApply(b *testing.B) {
	for b.Loop() {
		Apply("taskbar", FgCyan)
	}
}
