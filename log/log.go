// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package log is a small structured-logging abstraction the parser talks
// to instead of zap directly, so callers can plug in their own logger
// (or none at all) without this module taking a hard dependency on any
// particular logging stack beyond its own default.
package log

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a log severity, ordered least to most severe.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal interface the parser depends on. A caller with
// its own logging stack implements this directly instead of adopting
// zap; NewStdLogger and NewZapLogger are two ready-made implementations.
type Logger interface {
	Log(level Level, keyvals ...any) error
}

// Helper adds printf-style convenience methods over a Logger, and is what
// the parser actually holds a reference to.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) log(level Level, format string, args ...any) {
	if h == nil || h.logger == nil {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	_ = h.logger.Log(level, "msg", msg)
}

func (h *Helper) Debugf(format string, args ...any) { h.log(LevelDebug, format, args...) }
func (h *Helper) Infof(format string, args ...any)  { h.log(LevelInfo, format, args...) }
func (h *Helper) Warnf(format string, args ...any)  { h.log(LevelWarn, format, args...) }
func (h *Helper) Errorf(format string, args ...any) { h.log(LevelError, format, args...) }
func (h *Helper) Fatalf(format string, args ...any) { h.log(LevelFatal, format, args...) }

// filterLogger drops any record below its minimum level before handing it
// to the wrapped Logger.
type filterLogger struct {
	next Logger
	min  Level
}

// NewFilter wraps logger so only records at or above the options applied
// (currently just FilterLevel) are passed through.
func NewFilter(logger Logger, opts ...FilterOption) Logger {
	f := &filterLogger{next: logger, min: LevelDebug}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FilterOption configures a filterLogger built by NewFilter.
type FilterOption func(*filterLogger)

// FilterLevel sets the minimum level that passes the filter.
func FilterLevel(level Level) FilterOption {
	return func(f *filterLogger) { f.min = level }
}

func (f *filterLogger) Log(level Level, keyvals ...any) error {
	if level < f.min {
		return nil
	}
	return f.next.Log(level, keyvals...)
}

// zapLogger adapts a *zap.SugaredLogger to the Logger interface, the
// production backend behind NewStdLogger.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps an already-constructed zap logger.
func NewZapLogger(z *zap.Logger) Logger {
	return &zapLogger{sugar: z.Sugar()}
}

func (z *zapLogger) Log(level Level, keyvals ...any) error {
	switch level {
	case LevelDebug:
		z.sugar.Debugw("", keyvals...)
	case LevelInfo:
		z.sugar.Infow("", keyvals...)
	case LevelWarn:
		z.sugar.Warnw("", keyvals...)
	case LevelError:
		z.sugar.Errorw("", keyvals...)
	case LevelFatal:
		z.sugar.Fatalw("", keyvals...)
	}
	return nil
}

// NewStdLogger builds a zap-backed Logger writing encoded lines to w, the
// default every parse entry point falls back to when the caller supplies
// no Logger of its own.
func NewStdLogger(w io.Writer) Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return NewZapLogger(zap.New(core))
}
