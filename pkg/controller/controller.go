package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/notify"
	"github.com/goliatone/go-pmsform/pkg/submission"
)

// Controller drives one questionnaire session. All methods are safe for
// concurrent use; events are applied one at a time.
type Controller struct {
	mu      sync.Mutex
	state   State
	reducer Reducer

	gateway     submission.Gateway
	notifier    notify.Notifier
	onSubmitted func(answers.Map)
	scroller    func()
	logger      *slog.Logger
	derivation  *submission.Derivation
}

// New validates cat and returns a controller positioned on its first section.
func New(cat catalog.Catalog, options ...Option) (*Controller, error) {
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("controller: invalid catalog: %w", err)
	}

	c := &Controller{
		state:    NewState(),
		notifier: notify.Nop{},
		logger:   slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.gateway == nil {
		c.gateway = submission.NewMemoryGateway()
	}

	derivation := submission.DerivationFor(cat)
	if c.derivation != nil {
		derivation = *c.derivation
	}
	c.reducer = Reducer{Catalog: cat, Derivation: derivation}
	return c, nil
}

// Catalog returns the catalog the controller was built with.
func (c *Controller) Catalog() catalog.Catalog {
	return c.reducer.Catalog
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Section returns the section currently shown.
func (c *Controller) Section() catalog.Section {
	c.mu.Lock()
	idx := c.state.Index
	c.mu.Unlock()
	section, _ := c.reducer.Catalog.Section(idx)
	return section
}

// FieldChange stores value for questionID and clears that question's error.
func (c *Controller) FieldChange(questionID string, value answers.Value) error {
	_, err := c.apply(context.Background(), FieldChanged{QuestionID: questionID, Value: value})
	return err
}

// Advance validates the current section and moves forward when it passes.
// It returns ErrIncomplete when required answers are missing; the error map
// then lists them.
func (c *Controller) Advance() error {
	_, err := c.apply(context.Background(), Advanced{})
	return err
}

// Retreat moves back one section without validating.
func (c *Controller) Retreat() error {
	_, err := c.apply(context.Background(), Retreated{})
	return err
}

// Jump moves to section index without validating.
func (c *Controller) Jump(index int) error {
	_, err := c.apply(context.Background(), Jumped{Index: index})
	return err
}

// Reset starts a fresh response after a successful submission.
func (c *Controller) Reset() error {
	_, err := c.apply(context.Background(), ResetRequested{})
	return err
}

// Submit validates the last section and hands the record to the gateway.
// The call blocks until the gateway answers. A concurrent Submit while one
// is pending returns ErrSubmitInFlight without touching the state. On
// gateway failure the form returns to the same section with all answers
// intact and the gateway error is returned wrapped.
func (c *Controller) Submit(ctx context.Context) error {
	effects, err := c.apply(ctx, SubmitRequested{})
	if err != nil {
		return err
	}

	var record submission.Record
	for _, eff := range effects {
		if p, ok := eff.(Persist); ok {
			record = p.Record
		}
	}

	stored, gwErr := c.create(ctx, record)
	if gwErr != nil {
		c.logger.ErrorContext(ctx, "Submission failed", slog.String("error", gwErr.Error()))
		if _, err := c.apply(ctx, SubmitFailed{Err: gwErr}); err != nil {
			return err
		}
		return fmt.Errorf("controller: submit: %w", gwErr)
	}

	c.logger.InfoContext(ctx, "Submission stored",
		slog.String("id", stored.ID),
		slog.String("submitter", stored.Record.SubmitterName),
	)
	_, err = c.apply(ctx, SubmitSucceeded{Stored: stored})
	return err
}

// create calls the gateway, turning a panic into an error so the form always
// returns to an interactive state.
func (c *Controller) create(ctx context.Context, record submission.Record) (stored submission.StoredRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("controller: gateway panic: %v", r)
		}
	}()
	return c.gateway.Create(ctx, record)
}

// apply runs ev through the reducer under the lock, then executes the
// resulting effects outside of it. Persist effects are returned to the
// caller instead of being executed here.
func (c *Controller) apply(ctx context.Context, ev Event) ([]Effect, error) {
	c.mu.Lock()
	before := c.state
	next, effects, err := c.reducer.Reduce(c.state, ev)
	c.state = next
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "Form event",
		slog.String("event", fmt.Sprintf("%T", ev)),
		slog.Int("from", before.Index),
		slog.Int("to", next.Index),
		slog.String("phase", next.Phase.String()),
		slog.Int("errors", len(next.Errors)),
	)

	c.run(ctx, effects)
	return effects, err
}

func (c *Controller) run(ctx context.Context, effects []Effect) {
	for _, eff := range effects {
		switch e := eff.(type) {
		case ScrollTop:
			if c.scroller != nil {
				c.scroller()
			}
		case Notify:
			c.notifier.Notify(ctx, e.Notification)
		case Submitted:
			if c.onSubmitted != nil {
				c.onSubmitted(e.Answers)
			}
		}
	}
}
