package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/phsym/console-slog"
)

// SlogLogger implements Logger on top of log/slog.
type SlogLogger struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

var _ Logger = (*SlogLogger)(nil)

// NewSlog creates a slog backed Logger writing to stdout.
//
// When the ENV environment variable is "development" the output is the
// human-readable console format, otherwise JSON lines with a "ts" time key.
func NewSlog(level Level, addSource bool) Logger {
	return NewSlogWithWriter(os.Stdout, level, addSource, os.Getenv("ENV") == "development")
}

// NewSlogWithWriter creates a slog backed Logger writing to w.
// console selects the human-readable console handler.
func NewSlogWithWriter(w io.Writer, level Level, addSource bool, console bool) Logger {
	lv := &slog.LevelVar{}
	lv.Set(toSlogLevel(level))

	var handler slog.Handler
	if console {
		handler = newConsoleHandler(w, lv)
	} else {
		opts := &slog.HandlerOptions{
			AddSource: addSource,
			Level:     lv,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					a.Key = "ts"
				}
				return a
			},
		}
		handler = slog.NewJSONHandler(w, opts)
	}

	return &SlogLogger{logger: slog.New(handler), level: lv}
}

func newConsoleHandler(w io.Writer, lv *slog.LevelVar) slog.Handler {
	return console.NewHandler(w, &console.HandlerOptions{
		AddSource: true,
		Level:     lv,
	})
}

func (l *SlogLogger) Debug(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelDebug, msg, keysAndValues...)
}

func (l *SlogLogger) Info(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, keysAndValues...)
}

func (l *SlogLogger) Warn(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, keysAndValues...)
}

func (l *SlogLogger) Error(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelError, msg, keysAndValues...)
}

func (l *SlogLogger) Fatal(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelError, msg, keysAndValues...)
	os.Exit(1)
}

// With returns a child logger sharing the level of l.
func (l *SlogLogger) With(keyValues ...any) Logger {
	return &SlogLogger{
		logger: l.logger.With(keyValues...),
		level:  l.level,
	}
}

func (l *SlogLogger) Level() Level {
	switch l.level.Level() {
	case slog.LevelDebug:
		return DebugLevel
	case slog.LevelInfo:
		return InfoLevel
	case slog.LevelWarn:
		return WarnLevel
	default:
		return ErrorLevel
	}
}

// SetLevel changes the level of l and of every logger derived from it with With.
func (l *SlogLogger) SetLevel(level Level) {
	l.level.Set(toSlogLevel(level))
}

// log must always be called directly by an exported logging method,
// because it uses a fixed call depth to obtain the pc.
func (l *SlogLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if !l.logger.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	// skip [runtime.Callers, this function, this function's caller]
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = l.logger.Handler().Handle(ctx, r)
}

func toSlogLevel(level Level) slog.Level {
	switch level {
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
