package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger and tags every record with the component that emitted it.
type Logger struct {
	*slog.Logger
	component string
}

// Config holds logger configuration
type Config struct {
	Level     slog.Level
	Component string
	// Output defaults to stderr so that log lines never mix with menu output.
	Output io.Writer
}

// DefaultConfig returns sensible defaults for the interactive tools.
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelError,
		Component: ComponentApp,
		Output:    os.Stderr,
	}
}

// New creates a new logger with the given configuration
func New(config Config) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: config.Level})
	component := config.Component
	if component == "" {
		component = ComponentApp
	}

	return &Logger{
		Logger:    slog.New(handler).With(FieldComponent, component),
		component: component,
	}
}

// ParseLevel maps debug, info, warn and error (any case) to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// WithComponent returns a logger tagged with a different component name.
// The underlying handler is shared.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With(FieldComponent, component),
		component: component,
	}
}

// Operation logs the outcome of a user-level operation at Info, or at Warn
// when it was rejected with err.
func (l *Logger) Operation(ctx context.Context, op string, err error, args ...any) {
	args = append([]any{FieldOperation, op}, args...)
	if id := GetActionID(ctx); id != "" {
		args = append(args, FieldActionID, id)
	}
	if err != nil {
		l.Logger.WarnContext(ctx, "Operation rejected", append(args, FieldError, err)...)
		return
	}
	l.Logger.InfoContext(ctx, "Operation completed", args...)
}

// SetDefault sets the default logger for the application
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}

// Component returns the logger's component name
func (l *Logger) Component() string {
	return l.component
}

// Default wraps the process-wide slog logger.
func Default() *Logger {
	return &Logger{Logger: slog.Default(), component: ComponentApp}
}

func orDefault(l *Logger) *Logger {
	if l == nil {
		return Default()
	}
	return l
}

// For returns l tagged with component, falling back to the default logger when l is nil.
func For(l *Logger, component string) *Logger {
	return orDefault(l).WithComponent(component)
}
