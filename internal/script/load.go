// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package script

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

const hclExt = ".hcl"

var (
	// ErrLoadScript is returned when a script file cannot be read.
	ErrLoadScript = errors.New("failed to load progress script")
	// ErrDecodeScript is returned when a script cannot be parsed.
	ErrDecodeScript = errors.New("failed to decode progress script")
)

// FsFactory returns the filesystem Load reads from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Load reads, decodes and validates the script at path.
func Load(ctx context.Context, path string, vars map[string]string) (*Script, error) {
	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrLoadScript, err)
	}

	ctxlog.Debug(ctx, "script", "detail", "loaded", "path", path, "bytes", len(data))

	return Decode(path, data, vars)
}

// Decode parses data as HCL when name ends in .hcl and as YAML otherwise, then validates it.
// vars are visible to HCL scripts as var.<name>.
func Decode(name string, data []byte, vars map[string]string) (*Script, error) {
	var (
		s   *Script
		err error
	)

	if strings.EqualFold(filepath.Ext(name), hclExt) {
		s, err = DecodeHCL(name, data, vars)
	} else {
		s, err = DecodeYAML(data)
	}

	if err != nil {
		return nil, err
	}

	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// DecodeYAML parses a YAML script. Unknown fields are rejected.
func DecodeYAML(data []byte) (*Script, error) {
	var s Script
	if err := yaml.UnmarshalWithOptions(data, &s, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeScript, err)
	}

	return &s, nil
}

type hclScript struct {
	Name        string    `hcl:"name,optional"`
	Description string    `hcl:"description,optional"`
	Steps       []hclStep `hcl:"step,block"`
}

type hclStep struct {
	Action    string  `hcl:"action,label"`
	State     *string `hcl:"state,optional"`
	Completed *uint64 `hcl:"completed,optional"`
	Total     *uint64 `hcl:"total,optional"`
	Duration  *string `hcl:"duration,optional"`
	Increment *uint64 `hcl:"increment,optional"`
	Interval  *string `hcl:"interval,optional"`
}

// DecodeHCL parses an HCL script:
//
//	name = "copy"
//	step "show" {}
//	step "value" {
//	  completed = 3
//	  total     = var.total
//	}
func DecodeHCL(filename string, data []byte, vars map[string]string) (*Script, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrDecodeScript, diags)
	}

	var hs hclScript
	if diags := gohcl.DecodeBody(file.Body, evalContext(vars), &hs); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrDecodeScript, diags)
	}

	s := &Script{
		Name:        hs.Name,
		Description: hs.Description,
		Steps:       make([]Step, len(hs.Steps)),
	}

	for i, st := range hs.Steps {
		s.Steps[i] = Step{
			Action:    Action(st.Action),
			State:     deref(st.State),
			Completed: deref(st.Completed),
			Total:     deref(st.Total),
			Duration:  deref(st.Duration),
			Increment: deref(st.Increment),
			Interval:  deref(st.Interval),
		}
	}

	return s, nil
}

func evalContext(vars map[string]string) *hcl.EvalContext {
	values := make(map[string]cty.Value, len(vars))

	for k, v := range vars {
		values[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(values),
		},
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}

	return *p
}
