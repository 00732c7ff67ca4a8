// Package notify delivers user-facing notifications such as submission
// success or failure. Delivery is fire and forget: callers never observe a
// result, so implementations log their own failures.
package notify

import (
	"context"
	"log/slog"
)

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a short message shown to the respondent.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Func adapts a function into a Notifier.
type Func func(ctx context.Context, n Notification)

// Notify calls fn.
func (fn Func) Notify(ctx context.Context, n Notification) {
	fn(ctx, n)
}

// Nop discards notifications.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(context.Context, Notification) {}

// Multi fans a notification out to every notifier in order.
type Multi []Notifier

// Notify forwards n to each non-nil notifier.
func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, target := range m {
		if target == nil {
			continue
		}
		target.Notify(ctx, n)
	}
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs to logger (slog.Default when
// nil).
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs n at a level matching its severity.
func (l *LogNotifier) Notify(ctx context.Context, n Notification) {
	level := slog.LevelInfo
	if n.Severity == SeverityError {
		level = slog.LevelError
	}
	l.logger.Log(ctx, level, n.Title,
		slog.String("description", n.Description),
		slog.String("severity", string(n.Severity)),
	)
}
