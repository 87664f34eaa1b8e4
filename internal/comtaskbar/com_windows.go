// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows && (amd64 || arm64)

package comtaskbar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/matt-FFFFFF/tbprogress/internal/apartment"
	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/tbprogress/internal/taskbar"
)

const (
	sOK = 0x00000000
	// sFalse is returned by CoInitializeEx if it was already called on this thread.
	sFalse = 0x00000001
)

var (
	clsidTaskbarList = ole.NewGUID("{56FDF344-FD6D-11D0-958A-006097C9A090}")
	iidTaskbarList3  = ole.NewGUID("{EA1AFB91-9E28-4B86-90E9-9E9F8A5EEFAF}")
)

// taskbarList3Vtbl follows the ITaskbarList, ITaskbarList2 and ITaskbarList3 method order.
type taskbarList3Vtbl struct {
	ole.IUnknownVtbl
	HrInit                uintptr
	AddTab                uintptr
	DeleteTab             uintptr
	ActivateTab           uintptr
	SetActiveAlt          uintptr
	MarkFullscreenWindow  uintptr
	SetProgressValue      uintptr
	SetProgressState      uintptr
	RegisterTab           uintptr
	UnregisterTab         uintptr
	SetTabOrder           uintptr
	SetTabActive          uintptr
	ThumbBarAddButtons    uintptr
	ThumbBarUpdateButtons uintptr
	ThumbBarSetImageList  uintptr
	SetOverlayIcon        uintptr
	SetThumbnailTooltip   uintptr
	SetThumbnailClip      uintptr
}

type taskbarList3 struct {
	ole.IUnknown
}

func (l *taskbarList3) vtbl() *taskbarList3Vtbl {
	return (*taskbarList3Vtbl)(unsafe.Pointer(l.RawVTable))
}

func (l *taskbarList3) hrInit() error {
	hr, _, _ := syscall.SyscallN(l.vtbl().HrInit, uintptr(unsafe.Pointer(l)))
	return hresult(hr)
}

func (l *taskbarList3) setProgressState(w taskbar.Window, s taskbar.State) error {
	hr, _, _ := syscall.SyscallN(l.vtbl().SetProgressState, uintptr(unsafe.Pointer(l)), uintptr(w), tbpFlag(s))
	return hresult(hr)
}

func (l *taskbarList3) setProgressValue(w taskbar.Window, completed, total uint64) error {
	hr, _, _ := syscall.SyscallN(l.vtbl().SetProgressValue, uintptr(unsafe.Pointer(l)), uintptr(w), uintptr(completed), uintptr(total))
	return hresult(hr)
}

func hresult(hr uintptr) error {
	if hr != sOK {
		return ole.NewError(hr)
	}

	return nil
}

// Broker opens COM sessions and ITaskbarList3 objects on its own apartment thread.
type Broker struct {
	apt    *apartment.Apartment
	logger *slog.Logger
}

// NewBroker starts a broker with a fresh apartment thread.
// The apartment stops when ctx is cancelled or Close is called.
func NewBroker(ctx context.Context) *Broker {
	return &Broker{
		apt:    apartment.New(ctx),
		logger: ctxlog.Logger(ctx),
	}
}

// Close stops the apartment thread. Indicators still alive can no longer be called.
func (b *Broker) Close() {
	b.apt.Close()
}

// OpenSession initialises COM for the apartment thread.
func (b *Broker) OpenSession() (taskbar.SessionStatus, error) {
	status := taskbar.SessionOpened

	err := b.apt.Do(func() error {
		err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)
		if err == nil {
			return nil
		}

		var oleErr *ole.OleError
		if errors.As(err, &oleErr) && oleErr.Code() == sFalse {
			status = taskbar.SessionAlreadyOpen
			return nil
		}

		return err
	})
	if err != nil {
		return status, fmt.Errorf("CoInitializeEx: %w", err)
	}

	return status, nil
}

// CloseSession uninitialises COM once for the apartment thread.
func (b *Broker) CloseSession() {
	err := b.apt.Do(func() error {
		ole.CoUninitialize()
		return nil
	})
	if err != nil {
		b.logger.Warn("comtaskbar", "detail", "cannot close COM session", "error", err)
	}
}

// Activate creates and initialises the shell's ITaskbarList3 object.
func (b *Broker) Activate(w taskbar.Window) (taskbar.Indicator, error) {
	var list *taskbarList3

	err := b.apt.Do(func() error {
		unknown, err := ole.CreateInstance(clsidTaskbarList, iidTaskbarList3)
		if err != nil {
			return errors.Join(ErrActivate, err)
		}

		l := (*taskbarList3)(unsafe.Pointer(unknown))
		if err := l.hrInit(); err != nil {
			l.Release()
			return errors.Join(ErrActivate, fmt.Errorf("HrInit: %w", err))
		}

		list = l

		return nil
	})
	if err != nil {
		return nil, err
	}

	b.logger.Debug("comtaskbar", "detail", "ITaskbarList3 activated", "window", w.String())

	return &indicator{apt: b.apt, list: list, logger: b.logger}, nil
}

type indicator struct {
	apt    *apartment.Apartment
	list   *taskbarList3
	logger *slog.Logger
}

func (i *indicator) SetState(w taskbar.Window, s taskbar.State) error {
	return i.apt.Do(func() error {
		if i.list == nil {
			return ErrReleased
		}

		return i.list.setProgressState(w, s)
	})
}

func (i *indicator) SetFill(w taskbar.Window, completed, total uint64) error {
	return i.apt.Do(func() error {
		if i.list == nil {
			return ErrReleased
		}

		return i.list.setProgressValue(w, completed, total)
	})
}

func (i *indicator) Release() {
	err := i.apt.Do(func() error {
		if i.list != nil {
			i.list.Release()
			i.list = nil
		}

		return nil
	})
	if err != nil {
		i.logger.Warn("comtaskbar", "detail", "cannot release ITaskbarList3", "error", err)
	}
}
