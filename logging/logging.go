// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package logging adapts github.com/luxfi/log.Logger for this
// module's protocol code, following the geth-style key/value calling
// convention shown throughout log/nolog.go (Debug/Warn/Error with
// variadic context pairs) rather than a format-string logger.
package logging

import (
	"context"
	"log/slog"

	"github.com/luxfi/log"
	"go.uber.org/zap"
)

// Logger is this module's logging interface, aliased so call sites
// never need to know the concrete implementation behind it.
type Logger = log.Logger

// nop is a no-op Logger for tests and for hosts that have not wired up
// structured logging yet, grounded on log/nolog.go's NoLog shape.
type nop struct{}

// NewNop returns a Logger that discards everything.
func NewNop() Logger { return nop{} }

func (n nop) With(ctx ...interface{}) log.Logger { return n }
func (n nop) New(ctx ...interface{}) log.Logger  { return n }

func (nop) Log(level slog.Level, msg string, ctx ...interface{}) {}
func (nop) Trace(msg string, ctx ...interface{})                 {}
func (nop) Debug(msg string, ctx ...interface{})                 {}
func (nop) Info(msg string, ctx ...interface{})                  {}
func (nop) Warn(msg string, ctx ...interface{})                  {}
func (nop) Error(msg string, ctx ...interface{})                 {}
func (nop) Crit(msg string, ctx ...interface{})                  {}
func (nop) WriteLog(level slog.Level, msg string, attrs ...any)  {}

func (nop) Enabled(ctx context.Context, level slog.Level) bool { return false }
func (nop) Handler() slog.Handler                              { return nil }

func (nop) Fatal(msg string, fields ...zap.Field) {}
func (nop) Verbo(msg string, fields ...zap.Field) {}

func (n nop) WithFields(fields ...zap.Field) log.Logger { return n }
func (n nop) WithOptions(opts ...zap.Option) log.Logger { return n }

func (nop) SetLevel(level slog.Level)        {}
func (nop) GetLevel() slog.Level             { return slog.Level(0) }
func (nop) EnabledLevel(lvl slog.Level) bool { return false }

func (nop) StopOnPanic()                  {}
func (nop) RecoverAndPanic(f func())      { f() }
func (nop) RecoverAndExit(f, exit func()) { f() }
func (nop) Stop()                         {}

func (nop) Write(p []byte) (n int, err error) { return len(p), nil }

// WithComponent tags every subsequent call from logger with a
// "component" field, the convention da.rs's tracing spans follow
// (`#[instrument(name = "DA Task", ...)]`) translated to this
// module's key/value logging.
func WithComponent(logger Logger, component string) Logger {
	return logger.With("component", component)
}
