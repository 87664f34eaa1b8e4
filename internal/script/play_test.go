// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package script

import (
	"context"
	"testing"
	"time"

	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar/taskbartest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlay_DrivesHandleInOrder(t *testing.T) {
	s, err := Fetch(context.Background(), "./testdata/copy.yaml", nil)
	require.NoError(t, err)

	b := taskbartest.NewBroker()
	p := taskbar.New(context.Background(), 9, taskbar.WithBroker(b))
	defer p.Release()

	require.NoError(t, s.Play(context.Background(), p))

	assert.Equal(t, []taskbartest.Call{
		{Op: taskbartest.OpSetState, Window: 9, State: taskbar.Indeterminate},
		{Op: taskbartest.OpSetFill, Window: 9, Completed: 3, Total: 10},
		{Op: taskbartest.OpSetState, Window: 9, State: taskbar.Paused},
		{Op: taskbartest.OpSetFill, Window: 9, Completed: 5, Total: 10},
		{Op: taskbartest.OpSetFill, Window: 9, Completed: 10, Total: 10},
		{Op: taskbartest.OpSetState, Window: 9, State: taskbar.NoProgress},
	}, b.Calls())

	assert.False(t, p.Active())
	assert.Equal(t, taskbar.NoProgress, p.State())
}

func TestPlay_HCLReleases(t *testing.T) {
	s, err := Fetch(context.Background(), "./testdata/copy.hcl", map[string]string{"done": "2", "total": "6"})
	require.NoError(t, err)

	b := taskbartest.NewBroker()
	p := taskbar.New(context.Background(), 4, taskbar.WithBroker(b))

	require.NoError(t, s.Play(context.Background(), p))

	c, total := p.Value()
	assert.Equal(t, uint64(6), c)
	assert.Equal(t, uint64(6), total)
	assert.False(t, p.Attached())
	assert.Equal(t, 1, b.Releases())
}

type recorder struct {
	values [][2]uint64
}

func (r *recorder) Show() {}
func (r *recorder) Hide() {}
func (r *recorder) SetState(taskbar.State) {}
func (r *recorder) Release() {}

func (r *recorder) SetValue(completed, total uint64) {
	r.values = append(r.values, [2]uint64{completed, total})
}

func TestPlay_RampClampsToTotal(t *testing.T) {
	s := &Script{Steps: []Step{{Action: ActionRamp, Completed: 1, Total: 10, Increment: 4, Interval: "0s"}}}
	r := &recorder{}

	require.NoError(t, s.Play(context.Background(), r))
	assert.Equal(t, [][2]uint64{{1, 10}, {5, 10}, {9, 10}, {10, 10}}, r.values)
}

func TestPlay_RampHugeIncrement(t *testing.T) {
	s := &Script{Steps: []Step{{Action: ActionRamp, Completed: 2, Total: ^uint64(0), Increment: ^uint64(0), Interval: "0s"}}}
	r := &recorder{}

	require.NoError(t, s.Play(context.Background(), r))
	assert.Equal(t, [][2]uint64{{2, ^uint64(0)}, {^uint64(0), ^uint64(0)}}, r.values)
}

func TestPlay_InvalidScriptPlaysNothing(t *testing.T) {
	s := &Script{Steps: []Step{{Action: ActionValue, Completed: 1, Total: 2}, {Action: "bogus"}}}
	r := &recorder{}

	err := s.Play(context.Background(), r)
	assert.ErrorIs(t, err, ErrInvalidScript)
	assert.Empty(t, r.values)
}

func TestPlay_CancelDuringWait(t *testing.T) {
	s := &Script{Steps: []Step{
		{Action: ActionWait, Duration: "1h"},
		{Action: ActionValue, Completed: 1, Total: 1},
	}}
	r := &recorder{}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := s.Play(ctx, r)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, r.values)
}

func TestPlay_CancelledBeforeStart(t *testing.T) {
	s := &Script{Steps: []Step{{Action: ActionValue, Completed: 1, Total: 1}}}
	r := &recorder{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Play(ctx, r), context.Canceled)
	assert.Empty(t, r.values)
}
