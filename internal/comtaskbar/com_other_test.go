// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows || !(amd64 || arm64)

package comtaskbar

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
	"github.com/stretchr/testify/assert"
)

func TestBroker_UnsupportedPlatformYieldsInertHandle(t *testing.T) {
	b := NewBroker(context.Background())
	defer b.Close()

	_, err := b.OpenSession()
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)

	p := taskbar.New(context.Background(), 0x42, taskbar.WithBroker(b))
	defer p.Release()

	assert.False(t, p.Attached())
	assert.False(t, p.OwnsSession())
	assert.Equal(t, taskbar.NoWindow, p.Window())
}
