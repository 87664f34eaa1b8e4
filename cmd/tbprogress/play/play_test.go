// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package play

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVars(t *testing.T) {
	vars, err := parseVars([]string{"total=10", " done =3", "label=a=b", "empty="})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"total": "10",
		"done":  "3",
		"label": "a=b",
		"empty": "",
	}, vars)
}

func TestParseVars_Invalid(t *testing.T) {
	for _, in := range []string{"novalue", "=3"} {
		t.Run(in, func(t *testing.T) {
			_, err := parseVars([]string{in})
			assert.ErrorIs(t, err, ErrInvalidVar)
		})
	}
}
