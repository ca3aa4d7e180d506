package notifications

import (
	"context"

	"convertly/internal/config"
)

// Notifier is the notification surface exposed to client components.
// Implementations must tolerate empty messages and never panic; delivery
// failures are returned so callers can log them, but they carry no
// operational weight.
type Notifier interface {
	Success(ctx context.Context, title, message string) error
	Info(ctx context.Context, title, message string) error
	Error(ctx context.Context, title, message string) error
}

// NewFromConfig builds the notifier stack: console output always, plus ntfy
// push delivery when a topic is configured.
func NewFromConfig(cfg *config.Config) Notifier {
	console := NewConsole()
	if cfg == nil || cfg.Notifications.NtfyTopic == "" {
		return console
	}
	return Multi{console, newNtfy(cfg)}
}

// Noop discards every notification.
type Noop struct{}

func (Noop) Success(context.Context, string, string) error { return nil }
func (Noop) Info(context.Context, string, string) error    { return nil }
func (Noop) Error(context.Context, string, string) error   { return nil }

// Multi fans a notification out to every wrapped notifier. The first
// delivery error is returned after all notifiers have been invoked.
type Multi []Notifier

func (m Multi) Success(ctx context.Context, title, message string) error {
	return m.each(func(n Notifier) error { return n.Success(ctx, title, message) })
}

func (m Multi) Info(ctx context.Context, title, message string) error {
	return m.each(func(n Notifier) error { return n.Info(ctx, title, message) })
}

func (m Multi) Error(ctx context.Context, title, message string) error {
	return m.each(func(n Notifier) error { return n.Error(ctx, title, message) })
}

func (m Multi) each(fn func(Notifier) error) error {
	var first error
	for _, notifier := range m {
		if err := fn(notifier); err != nil && first == nil {
			first = err
		}
	}
	return first
}
