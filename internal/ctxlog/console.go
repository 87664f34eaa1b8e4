// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/tbprogress/internal/color"
)

var (
	// ErrMarshalAttribute is returned when the record attributes cannot be rendered.
	ErrMarshalAttribute = errors.New("error when marshaling attribute")
	// ErrIoWrite is returned when the destination writer fails.
	ErrIoWrite = errors.New("error when writing to output")
)

// TimeFormat is the layout of the timestamp that prefixes each line.
const TimeFormat = "[15:04:05.000]"

// ConsoleHandler writes one line per record: timestamp, level, message and the
// remaining attributes as a compact JSON object.
// Attributes are collected by an inner JSON handler so groups and WithAttrs behave
// exactly as they do for slog.JSONHandler.
type ConsoleHandler struct {
	inner   slog.Handler
	replace func([]string, slog.Attr) slog.Attr
	buf     *bytes.Buffer
	mu      *sync.Mutex
	out     io.Writer
	colour  bool
	empty   bool
	json    *colorjson.Formatter
}

// Option configures a ConsoleHandler.
type Option func(h *ConsoleHandler)

// WithDestinationWriter sets where lines are written. The default is os.Stderr.
func WithDestinationWriter(w io.Writer) Option {
	return func(h *ConsoleHandler) {
		h.out = w
	}
}

// WithColour forces ANSI colour on.
func WithColour() Option {
	return func(h *ConsoleHandler) {
		h.colour = true
	}
}

// WithAutoColour enables colour when stdout is a terminal and NO_COLOR is not set.
func WithAutoColour() Option {
	return func(h *ConsoleHandler) {
		h.colour = color.Enabled()
	}
}

// WithOutputEmptyAttrs prints "{}" for records without attributes.
func WithOutputEmptyAttrs() Option {
	return func(h *ConsoleHandler) {
		h.empty = true
	}
}

// NewConsoleHandler returns a handler honouring the level, source and ReplaceAttr settings in opts.
func NewConsoleHandler(opts *slog.HandlerOptions, options ...Option) *ConsoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	buf := &bytes.Buffer{}
	h := &ConsoleHandler{
		inner: slog.NewJSONHandler(buf, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: dropBuiltins(opts.ReplaceAttr),
		}),
		replace: opts.ReplaceAttr,
		buf:     buf,
		mu:      &sync.Mutex{},
		out:     os.Stderr,
	}

	for _, opt := range options {
		opt(h)
	}

	h.json = colorjson.NewFormatter()
	h.json.DisabledColor = !h.colour

	return h
}

// Enabled reports whether the inner handler accepts level.
func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.inner = h.inner.WithAttrs(attrs)

	return &c
}

// WithGroup returns a handler that nests subsequent attributes under name.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.inner = h.inner.WithGroup(name)

	return &c
}

// Handle formats r and writes it as a single line.
func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	parts := make([]string, 0, 4)

	if a := h.builtin(slog.TimeKey, slog.StringValue(r.Time.Format(TimeFormat))); a != "" {
		parts = append(parts, h.paint(a, color.Faint))
	}

	if a := h.builtin(slog.LevelKey, slog.AnyValue(r.Level)); a != "" {
		parts = append(parts, h.paint(a+":", levelColour(r.Level)))
	}

	if a := h.builtin(slog.MessageKey, slog.StringValue(r.Message)); a != "" {
		parts = append(parts, h.paint(a, color.Bold))
	}

	attrs, err := h.attrs(ctx, r)
	if err != nil {
		return err
	}

	if h.empty || len(attrs) > 0 {
		b, err := h.json.Marshal(attrs)
		if err != nil {
			return errors.Join(ErrMarshalAttribute, err)
		}

		parts = append(parts, string(b))
	}

	line := strings.Join(parts, " ") + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := io.WriteString(h.out, line); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

// builtin renders one of the fixed fields, applying the caller's ReplaceAttr.
// An empty result means the field was removed.
func (h *ConsoleHandler) builtin(key string, v slog.Value) string {
	a := slog.Attr{Key: key, Value: v}
	if h.replace != nil {
		a = h.replace(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return ""
	}

	return a.Value.String()
}

func (h *ConsoleHandler) paint(s string, codes ...color.Code) string {
	if !h.colour {
		return s
	}

	return color.Apply(s, codes...)
}

func (h *ConsoleHandler) attrs(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.mu.Lock()
	defer func() {
		h.buf.Reset()
		h.mu.Unlock()
	}()

	if err := h.inner.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("error when calling inner handler's Handle: %w", err)
	}

	var attrs map[string]any
	if err := json.Unmarshal(h.buf.Bytes(), &attrs); err != nil {
		return nil, fmt.Errorf("error when unmarshaling inner handler's Handle result: %w", err)
	}

	return attrs, nil
}

func levelColour(l slog.Level) color.Code {
	switch {
	case l < slog.LevelInfo:
		return color.FgWhite
	case l < slog.LevelWarn:
		return color.FgCyan
	case l < slog.LevelError:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

func dropBuiltins(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 {
			switch a.Key {
			case slog.TimeKey, slog.LevelKey, slog.MessageKey:
				return slog.Attr{}
			}
		}

		if next == nil {
			return a
		}

		return next(groups, a)
	}
}
