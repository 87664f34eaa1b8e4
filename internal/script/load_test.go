// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package script

import (
	"context"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlScript = `name: demo
steps:
  - action: show
  - action: value
    completed: 1
    total: 4
  - action: wait
    duration: 10ms
`

func TestDecodeYAML(t *testing.T) {
	s, err := Decode("demo.yaml", []byte(yamlScript), nil)
	require.NoError(t, err)

	assert.Equal(t, "demo", s.Name)
	assert.Equal(t, []Step{
		{Action: ActionShow},
		{Action: ActionValue, Completed: 1, Total: 4},
		{Action: ActionWait, Duration: "10ms"},
	}, s.Steps)
}

func TestDecodeYAML_UnknownField(t *testing.T) {
	_, err := Decode("x.yml", []byte("steps:\n  - action: show\n    colour: red\n"), nil)
	assert.ErrorIs(t, err, ErrDecodeScript)
}

func TestDecodeYAML_Invalid(t *testing.T) {
	_, err := Decode("x.yaml", []byte("steps:\n  - action: state\n    state: sideways\n"), nil)
	assert.ErrorIs(t, err, ErrInvalidScript)
}

func TestDecode_NameDefaultsToFileName(t *testing.T) {
	s, err := Decode("dir/backup.yaml", []byte("steps:\n  - action: show\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "backup", s.Name)
}

func TestDecodeHCL(t *testing.T) {
	src := `
name = "demo"

step "show" {}

step "value" {
  completed = var.done
  total     = 8
}

step "state" {
  state = "paused"
}

step "wait" {
  duration = "5ms"
}
`

	s, err := Decode("demo.HCL", []byte(src), map[string]string{"done": "2"})
	require.NoError(t, err)

	assert.Equal(t, "demo", s.Name)
	assert.Equal(t, []Step{
		{Action: ActionShow},
		{Action: ActionValue, Completed: 2, Total: 8},
		{Action: ActionState, State: "paused"},
		{Action: ActionWait, Duration: "5ms"},
	}, s.Steps)
}

func TestDecodeHCL_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "syntax", src: `step "show" {`},
		{name: "undefined variable", src: "step \"value\" {\n  total = var.missing\n}\n"},
		{name: "unexpected attribute", src: "step \"show\" {\n  colour = \"red\"\n}\n"},
		{name: "not a number", src: "step \"value\" {\n  total = \"ten\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("bad.hcl", []byte(tt.src), nil)
			assert.ErrorIs(t, err, ErrDecodeScript)
		})
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/scripts/demo.yaml", []byte(yamlScript), 0o644))

	stub := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stub.Reset()

	s, err := Load(context.Background(), "/scripts/demo.yaml", nil)
	require.NoError(t, err)
	assert.Len(t, s.Steps, 3)

	_, err = Load(context.Background(), "/scripts/missing.yaml", nil)
	assert.ErrorIs(t, err, ErrLoadScript)
}
