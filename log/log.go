// Package log provides the structured logger every store facade and
// registry carries. It wraps zap behind log/slog so callers only ever
// see the standard library's logging interface.
package log

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

func core(level zapcore.Level) zapcore.Core {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
}

// ParseLevel maps a dohconfig log-level string to a zap level, falling
// back to info for anything it doesn't recognize.
func ParseLevel(s string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

func NewHandler(name string) slog.Handler {
	return zapslog.NewHandler(core(zapcore.DebugLevel), zapslog.WithName(name))
}

func NewHandlerAt(name string, level zapcore.Level) slog.Handler {
	return zapslog.NewHandler(core(level), zapslog.WithName(name))
}

func New(name string) *slog.Logger {
	return slog.New(NewHandler(name))
}

func NewAt(name string, level zapcore.Level) *slog.Logger {
	return slog.New(NewHandlerAt(name, level))
}

func NewContext(ctx context.Context, name string) context.Context {
	return IntoContext(ctx, New(name))
}

type ctxKey struct{}

// IntoContext adds a logger to a context. Use FromContext to pull it back out.
func IntoContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger carried by ctx, or the default slog
// logger if none was attached (or ctx is nil).
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if v := ctx.Value(ctxKey{}); v != nil {
			return v.(*slog.Logger)
		}
	}
	return slog.Default()
}

// SubLogger derives a child logger from base that tags every entry with
// a "component" attribute set to suffix, e.g. component=Account for the
// Account facade. The logger's name itself is left unchanged.
func SubLogger(base *slog.Logger, suffix string) *slog.Logger {
	return base.With(slog.String("component", suffix))
}
