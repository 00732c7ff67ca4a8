package controller

import (
	"log/slog"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/notify"
	"github.com/goliatone/go-pmsform/pkg/submission"
)

// Option configures a Controller.
type Option func(*Controller)

// WithGateway sets the backend that persists completed records. Without it
// records are kept in an in-memory gateway.
func WithGateway(gw submission.Gateway) Option {
	return func(c *Controller) {
		if gw != nil {
			c.gateway = gw
		}
	}
}

// WithNotifier sets the channel used for submission success and failure
// messages.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithOnSubmitted registers the callback invoked once with the final answers
// after the gateway accepted them.
func WithOnSubmitted(fn func(answers.Map)) Option {
	return func(c *Controller) {
		c.onSubmitted = fn
	}
}

// WithScroller registers the scroll-to-top side effect run on navigation.
func WithScroller(fn func()) Option {
	return func(c *Controller) {
		c.scroller = fn
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDerivation overrides how the summary fields of the submission record
// are derived. The default comes from the catalog's derived block.
func WithDerivation(d submission.Derivation) Option {
	return func(c *Controller) {
		c.derivation = &d
	}
}
