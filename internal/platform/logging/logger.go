// Package logging wraps zap behind a key/value API. Context variants add the
// active trace and span ids so log lines join up with Uptrace spans.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

// ParseLevel maps APP_LOG_LEVEL onto a level. Unknown values are info.
func ParseLevel(v string) Level {
	if lvl, ok := levelNames[strings.ToLower(strings.TrimSpace(v))]; ok {
		return lvl
	}
	return LevelInfo
}

// Logger is safe for concurrent use. A nil *Logger logs through Default.
type Logger struct {
	z      *zap.Logger
	synced *atomic.Bool
}

var std atomic.Pointer[Logger]

func init() {
	std.Store(NewNop())
}

// NewJSON writes one JSON object per line to stdout.
func NewJSON(level Level) *Logger {
	return newJSON(zapcore.Lock(os.Stdout), level)
}

func newJSON(out zapcore.WriteSyncer, level Level) *Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.MessageKey = "msg"
	enc.NameKey = "logger"
	enc.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), out, level)
	return FromZap(zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(2),
		zap.AddStacktrace(zapcore.ErrorLevel),
	))
}

func NewNop() *Logger {
	return FromZap(zap.NewNop())
}

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{z: z, synced: new(atomic.Bool)}
}

func Default() *Logger {
	return std.Load()
}

// SetDefault replaces the process logger. nil installs a no-op logger.
func SetDefault(l *Logger) {
	if l == nil {
		l = NewNop()
	}
	std.Store(l)
}

// Sync flushes buffered entries once for a logger and everything derived
// from it. Later calls are no-ops.
func (l *Logger) Sync() error {
	if l == nil || !l.synced.CompareAndSwap(false, true) {
		return nil
	}
	return l.z.Sync()
}

func (l *Logger) With(args ...any) *Logger {
	l = l.orDefault()
	return &Logger{z: l.z.With(fields(args)...), synced: l.synced}
}

// Named tags every entry with component, e.g. "delivery" or "matching".
func (l *Logger) Named(component string) *Logger {
	l = l.orDefault()
	if component = strings.TrimSpace(component); component == "" {
		return l
	}
	return &Logger{z: l.z.With(zap.String("component", component)), synced: l.synced}
}

// Writer exposes the logger as an io.Writer at level, one entry per write.
func (l *Logger) Writer(level Level) io.Writer {
	return lineWriter{l: l.orDefault(), level: level}
}

func (l *Logger) Debug(msg string, args ...any) { l.write(context.Background(), LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(context.Background(), LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(context.Background(), LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(context.Background(), LevelError, msg, args) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelError, msg, args)
}

func (l *Logger) orDefault() *Logger {
	if l == nil {
		return Default()
	}
	return l
}

func (l *Logger) write(ctx context.Context, level Level, msg string, args []any) {
	ce := l.orDefault().z.Check(level, msg)
	if ce == nil {
		return
	}
	fs := fields(args)
	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fs = append(fs,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}
	ce.Write(fs...)
}

// fields pairs up key/value args. A non-string key becomes "arg" and a
// trailing key without a value is logged as null.
func fields(args []any) []zap.Field {
	out := make([]zap.Field, 0, len(args)/2+2)
	for len(args) > 0 {
		key, _ := args[0].(string)
		if key == "" {
			key = "arg"
		}
		if len(args) == 1 {
			out = append(out, zap.Any(key, nil))
			break
		}
		if err, ok := args[1].(error); ok {
			out = append(out, zap.NamedError(key, err))
		} else {
			out = append(out, zap.Any(key, args[1]))
		}
		args = args[2:]
	}
	return out
}

type lineWriter struct {
	l     *Logger
	level Level
}

func (w lineWriter) Write(p []byte) (int, error) {
	if msg := strings.TrimRight(string(p), "\r\n"); msg != "" {
		w.l.write(context.Background(), w.level, msg, nil)
	}
	return len(p), nil
}
