// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package script

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
)

// Action names a step.
type Action string

// Actions understood by Play.
const (
	ActionShow    Action = "show"
	ActionHide    Action = "hide"
	ActionState   Action = "state"
	ActionValue   Action = "value"
	ActionWait    Action = "wait"
	ActionRamp    Action = "ramp"
	ActionRelease Action = "release"
)

// Actions lists every action in documentation order.
var Actions = []Action{ActionShow, ActionHide, ActionState, ActionValue, ActionWait, ActionRamp, ActionRelease}

const (
	defaultRampIncrement = 1
	defaultRampInterval  = 50 * time.Millisecond
)

var (
	// ErrInvalidScript is returned when a script fails validation.
	ErrInvalidScript = errors.New("invalid progress script")
	// ErrNoSteps is returned for a script without steps.
	ErrNoSteps = errors.New("script has no steps")
	// ErrUnknownAction is returned for a step whose action is not recognised.
	ErrUnknownAction = errors.New("unknown action")
	// ErrMissingField is returned when a step lacks a field its action needs.
	ErrMissingField = errors.New("missing field")
	// ErrOverComplete is returned when completed exceeds total.
	ErrOverComplete = errors.New("completed exceeds total")
	// ErrBadDuration is returned for durations that do not parse or are negative.
	ErrBadDuration = errors.New("invalid duration")
)

// Script is a named sequence of steps.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Steps       []Step `yaml:"steps"`
}

// Step is one instruction. Which fields apply depends on Action.
type Step struct {
	Action    Action `yaml:"action"`
	State     string `yaml:"state,omitempty"`
	Completed uint64 `yaml:"completed,omitempty"`
	Total     uint64 `yaml:"total,omitempty"`
	Duration  string `yaml:"duration,omitempty"`
	Increment uint64 `yaml:"increment,omitempty"`
	Interval  string `yaml:"interval,omitempty"`
}

// StepError ties a validation problem to a step.
type StepError struct {
	Index  int
	Action Action
	Err    error
}

// Error implements error.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Action, e.Err)
}

// Unwrap returns the underlying problem.
func (e *StepError) Unwrap() error {
	return e.Err
}

// instruction is a validated step.
type instruction struct {
	action    Action
	state     taskbar.State
	completed uint64
	total     uint64
	increment uint64
	duration  time.Duration
	interval  time.Duration
}

// Validate reports every problem in the script at once.
// The returned error matches ErrInvalidScript and each individual *StepError.
func (s *Script) Validate() error {
	_, err := s.compile()
	return err
}

func (s *Script) compile() ([]instruction, error) {
	if len(s.Steps) == 0 {
		return nil, errors.Join(ErrInvalidScript, ErrNoSteps)
	}

	var merr *multierror.Error

	out := make([]instruction, 0, len(s.Steps))

	for i, st := range s.Steps {
		in, err := st.compile()
		if err != nil {
			merr = multierror.Append(merr, &StepError{Index: i, Action: st.Action, Err: err})
			continue
		}

		out = append(out, in)
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}

	return out, nil
}

func (st Step) compile() (instruction, error) {
	in := instruction{action: st.Action}

	switch st.Action {
	case ActionShow, ActionHide, ActionRelease:
		return in, nil

	case ActionState:
		if st.State == "" {
			return in, fmt.Errorf("%w: state", ErrMissingField)
		}

		s, err := taskbar.ParseState(st.State)
		if err != nil {
			return in, err //nolint:wrapcheck
		}

		in.state = s

		return in, nil

	case ActionValue:
		if st.Completed > st.Total {
			return in, fmt.Errorf("%w: %d > %d", ErrOverComplete, st.Completed, st.Total)
		}

		in.completed, in.total = st.Completed, st.Total

		return in, nil

	case ActionWait:
		if st.Duration == "" {
			return in, fmt.Errorf("%w: duration", ErrMissingField)
		}

		d, err := parseDuration(st.Duration)
		if err != nil {
			return in, err
		}

		in.duration = d

		return in, nil

	case ActionRamp:
		var errs *multierror.Error

		if st.Total == 0 {
			errs = multierror.Append(errs, fmt.Errorf("%w: total", ErrMissingField))
		} else if st.Completed > st.Total {
			errs = multierror.Append(errs, fmt.Errorf("%w: %d > %d", ErrOverComplete, st.Completed, st.Total))
		}

		in.completed, in.total, in.increment, in.interval = st.Completed, st.Total, st.Increment, defaultRampInterval
		if in.increment == 0 {
			in.increment = defaultRampIncrement
		}

		if st.Interval != "" {
			d, err := parseDuration(st.Interval)
			if err != nil {
				errs = multierror.Append(errs, err)
			}

			in.interval = d
		}

		return in, errs.ErrorOrNil()
	}

	return in, fmt.Errorf("%w: %q", ErrUnknownAction, st.Action)
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBadDuration, err)
	}

	if d < 0 {
		return 0, fmt.Errorf("%w: %s is negative", ErrBadDuration, s)
	}

	return d, nil
}
