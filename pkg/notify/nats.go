package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// DefaultSubject is the subject notifications are published on.
const DefaultSubject = "pmsform.notifications"

// Publisher is the subset of *nats.Conn used by NATSNotifier.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type natsEnvelope struct {
	Notification
	Timestamp time.Time `json:"timestamp"`
}

// NATSNotifier publishes notifications as JSON on a NATS subject.
type NATSNotifier struct {
	pub     Publisher
	subject string
	logger  *slog.Logger
	now     func() time.Time
}

// NATSOption configures a NATSNotifier.
type NATSOption func(*NATSNotifier)

// WithSubject overrides DefaultSubject.
func WithSubject(subject string) NATSOption {
	return func(n *NATSNotifier) {
		if subject != "" {
			n.subject = subject
		}
	}
}

// WithLogger sets the logger used to report publish failures.
func WithLogger(logger *slog.Logger) NATSOption {
	return func(n *NATSNotifier) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// NewNATSNotifier wraps an existing publisher (usually a *nats.Conn).
func NewNATSNotifier(pub Publisher, opts ...NATSOption) *NATSNotifier {
	n := &NATSNotifier{
		pub:     pub,
		subject: DefaultSubject,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// ConnectNATS dials url and returns a notifier together with the connection
// so the caller can drain it on shutdown.
func ConnectNATS(url string, opts ...NATSOption) (*NATSNotifier, *nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("pmsform"),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("notify: connect nats %s: %w", url, err)
	}
	return NewNATSNotifier(nc, opts...), nc, nil
}

// Notify publishes n. Failures are logged and otherwise ignored.
func (n *NATSNotifier) Notify(ctx context.Context, note Notification) {
	if n == nil || n.pub == nil {
		return
	}
	payload, err := json.Marshal(natsEnvelope{Notification: note, Timestamp: n.now().UTC()})
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to encode notification", slog.String("error", err.Error()))
		return
	}
	if err := n.pub.Publish(n.subject, payload); err != nil {
		n.logger.WarnContext(ctx, "Failed to publish notification",
			slog.String("subject", n.subject),
			slog.String("error", err.Error()),
		)
	}
}
