// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package states

import (
	"bytes"
	"testing"

	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, write(out))

	for _, s := range taskbar.States {
		assert.Contains(t, out.String(), s.String())
		assert.NotEmpty(t, descriptions[s])
	}

	assert.Contains(t, out.String(), "  no-progress    nothing is shown\n")
	assert.Contains(t, out.String(), "  ramp\n")
}
