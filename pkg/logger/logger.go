package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/angelmondragon/orderdesk-backend/pkg/env"
	"github.com/rs/zerolog"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Options configures the structured logger.
type Options struct {
	ServiceName string
	Level       zerolog.Level
	// WarnStack lowers the stack-trace threshold from error to warn.
	WarnStack bool
	Output    io.Writer
}

// Logger writes JSON lines (or console output when LOG_FORMAT=console).
// Request-scoped fields travel in the context as a derived zerolog.Logger.
type Logger struct {
	root       zerolog.Logger
	stackLevel zerolog.Level
}

func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if env.Get("LOG_FORMAT", "json") == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	level := opts.Level
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	stackLevel := zerolog.ErrorLevel
	if opts.WarnStack {
		stackLevel = zerolog.WarnLevel
	}

	return &Logger{
		root:       zerolog.New(out).Level(level).With().Timestamp().Str("service", opts.ServiceName).Logger(),
		stackLevel: stackLevel,
	}
}

// ParseLevel maps a textual level onto zerolog, defaulting to info.
func ParseLevel(value string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// from returns the context-scoped logger, or the root when ctx carries none.
func (l *Logger) from(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if scoped := zerolog.Ctx(ctx); scoped != nil && scoped.GetLevel() != zerolog.Disabled {
			return scoped
		}
	}
	return &l.root
}

func (l *Logger) WithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.from(ctx).With().Fields(fields).Logger().WithContext(ctx)
}

func (l *Logger) WithField(ctx context.Context, key string, value any) context.Context {
	return l.WithFields(ctx, map[string]any{key: value})
}

func (l *Logger) WithRequestID(ctx context.Context, requestID string) context.Context {
	return l.WithField(ctx, "request_id", requestID)
}

func (l *Logger) WithUserID(ctx context.Context, userID uint64) context.Context {
	return l.WithField(ctx, "user_id", userID)
}

func (l *Logger) Debug(ctx context.Context, msg string) { l.write(ctx, zerolog.DebugLevel, msg, nil) }

func (l *Logger) Info(ctx context.Context, msg string) { l.write(ctx, zerolog.InfoLevel, msg, nil) }

func (l *Logger) Warn(ctx context.Context, msg string) { l.write(ctx, zerolog.WarnLevel, msg, nil) }

func (l *Logger) Error(ctx context.Context, msg string, err error) {
	l.write(ctx, zerolog.ErrorLevel, msg, err)
}

func (l *Logger) write(ctx context.Context, level zerolog.Level, msg string, err error) {
	event := l.from(ctx).WithLevel(level)
	if event == nil {
		return
	}
	if err != nil {
		event = event.Err(err)
	}
	if level >= l.stackLevel {
		event = event.Str("stack", strings.TrimSpace(string(debug.Stack())))
	}
	event.Msg(msg)
}
