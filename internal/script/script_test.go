// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package script

import (
	"errors"
	"testing"
	"time"

	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	s := &Script{Steps: []Step{
		{Action: ActionShow},
		{Action: ActionState, State: "error"},
		{Action: ActionValue, Completed: 0, Total: 0},
		{Action: ActionWait, Duration: "0s"},
		{Action: ActionRamp, Total: 10},
		{Action: ActionHide},
		{Action: ActionRelease},
	}}

	assert.NoError(t, s.Validate())
}

func TestValidate_NoSteps(t *testing.T) {
	err := (&Script{}).Validate()
	assert.ErrorIs(t, err, ErrInvalidScript)
	assert.ErrorIs(t, err, ErrNoSteps)
}

func TestValidate_AggregatesEveryProblem(t *testing.T) {
	s := &Script{Steps: []Step{
		{Action: "jump"},
		{Action: ActionState, State: "purple"},
		{Action: ActionState},
		{Action: ActionValue, Completed: 11, Total: 10},
		{Action: ActionWait, Duration: "soon"},
		{Action: ActionWait, Duration: "-1s"},
		{Action: ActionRamp},
		{Action: ActionShow},
	}}

	err := s.Validate()
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrInvalidScript)
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.ErrorIs(t, err, taskbar.ErrUnknownState)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.ErrorIs(t, err, ErrOverComplete)
	assert.ErrorIs(t, err, ErrBadDuration)

	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 0, se.Index)
	assert.Contains(t, err.Error(), "step 7 (ramp)")
	assert.NotContains(t, err.Error(), "step 8")
}

func TestStepCompile_RampDefaults(t *testing.T) {
	in, err := Step{Action: ActionRamp, Total: 5}.compile()
	require.NoError(t, err)

	assert.Equal(t, uint64(defaultRampIncrement), in.increment)
	assert.Equal(t, defaultRampInterval, in.interval)
}

func TestStepCompile_RampBadIntervalAndOverComplete(t *testing.T) {
	_, err := Step{Action: ActionRamp, Completed: 6, Total: 5, Interval: "x"}.compile()

	assert.ErrorIs(t, err, ErrOverComplete)
	assert.ErrorIs(t, err, ErrBadDuration)
}

func TestParseDuration(t *testing.T) {
	d, err := parseDuration("250ms")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	_, err = parseDuration("-1ms")
	assert.ErrorIs(t, err, ErrBadDuration)
}

func TestStepError(t *testing.T) {
	e := &StepError{Index: 2, Action: ActionWait, Err: ErrBadDuration}

	assert.Equal(t, "step 3 (wait): invalid duration", e.Error())
	assert.True(t, errors.Is(e, ErrBadDuration))
}
