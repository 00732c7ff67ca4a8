package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/controller"
	"github.com/goliatone/go-pmsform/pkg/render"
	"github.com/goliatone/go-pmsform/pkg/submission"
)

// Navigation menu entries.
const (
	MenuNext     = "Next"
	MenuPrevious = "Previous"
	MenuJump     = "Jump to section"
	MenuSubmit   = "Submit"
	MenuQuit     = "Quit"
)

// Session drives a controller from the terminal until the form is submitted
// or the respondent quits.
type Session struct {
	renderer *Renderer
}

// NewSession binds a session to renderer.
func NewSession(renderer *Renderer) *Session {
	return &Session{renderer: renderer}
}

// Run loops over sections: it prints the header, prompts the questions of
// the current section and offers the navigation menu. After a failed Next or
// Submit only the unsatisfied questions are prompted again. Run returns nil
// once the controller reports a submitted form, ErrQuit when the respondent
// quits and ErrAborted on interrupt.
func (s *Session) Run(ctx context.Context, c *controller.Controller) error {
	r := s.renderer
	retryOnly := false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		view := render.ViewOf(c)
		if view.Phase == controller.PhaseSubmitted {
			return nil
		}

		if err := r.driver.Info(ctx, r.Header(view)); err != nil {
			return err
		}
		if err := s.promptSection(ctx, c, view, retryOnly); err != nil {
			return err
		}
		retryOnly = false

		choice, err := s.menu(ctx, c)
		if err != nil {
			return err
		}

		switch choice {
		case MenuNext:
			err = c.Advance()
		case MenuPrevious:
			err = c.Retreat()
		case MenuJump:
			err = s.jump(ctx, c)
		case MenuSubmit:
			err = c.Submit(ctx)
			if err == nil {
				return nil
			}
		case MenuQuit:
			return ErrQuit
		}

		switch {
		case err == nil:
		case errors.Is(err, controller.ErrIncomplete):
			retryOnly = true
			if err := r.driver.Info(ctx, r.theme.Error.Render("Please answer the required questions before continuing.")); err != nil {
				return err
			}
		case errors.Is(err, ErrAborted), errors.Is(err, context.Canceled):
			return err
		default:
			// Gateway failures already produced a notification; keep the
			// respondent on the same section.
			r.logger.DebugContext(ctx, "Navigation refused", slog.String("choice", choice), slog.String("error", err.Error()))
		}
	}
}

// AnotherPrompt is asked after every successful submission.
const AnotherPrompt = "Submit another response?"

// Collect runs the questionnaire repeatedly. After each submission stored is
// called with the persisted record and the respondent is asked whether to
// start over; on yes the controller is reset and Run starts again. Collect
// returns the number of submissions and the error that ended the last Run,
// or nil when the respondent declined another response.
func (s *Session) Collect(ctx context.Context, c *controller.Controller, stored func(submission.StoredRecord)) (int, error) {
	count := 0
	for {
		if err := s.Run(ctx, c); err != nil {
			return count, err
		}
		count++
		if stored != nil {
			stored(c.State().Stored)
		}

		again, err := s.renderer.driver.Confirm(ctx, ConfirmConfig{Message: AnotherPrompt})
		if err != nil {
			return count, err
		}
		if !again {
			return count, nil
		}
		if err := c.Reset(); err != nil {
			return count, fmt.Errorf("tui: start another response: %w", err)
		}
	}
}

func (s *Session) promptSection(ctx context.Context, c *controller.Controller, view render.View, retryOnly bool) error {
	errs := render.FieldErrors(view.Section, view.Errors)
	for _, q := range view.Section.Questions {
		if retryOnly && errs[q.ID] == "" {
			continue
		}
		value, err := s.renderer.Prompt(ctx, q, view.Value(q.ID), errs[q.ID])
		if err != nil {
			return err
		}
		if err := c.FieldChange(q.ID, value); err != nil {
			return fmt.Errorf("tui: record %q: %w", q.ID, err)
		}
	}
	return nil
}

// MenuFor returns the navigation entries enabled for the controller's
// position, using the same gating as the controller.
func MenuFor(c *controller.Controller) []string {
	var items []string
	if !c.IsLast() {
		items = append(items, MenuNext)
	}
	if c.CanRetreat() {
		items = append(items, MenuPrevious)
	}
	items = append(items, MenuJump)
	if c.CanSubmit() {
		items = append(items, MenuSubmit)
	}
	return append(items, MenuQuit)
}

func (s *Session) menu(ctx context.Context, c *controller.Controller) (string, error) {
	items := MenuFor(c)
	idx, err := s.renderer.driver.Select(ctx, SelectConfig{
		Message:      "What next?",
		Options:      items,
		DefaultIndex: 0,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(items) {
		return "", fmt.Errorf("tui: menu selection %d out of range", idx)
	}
	return items[idx], nil
}

func (s *Session) jump(ctx context.Context, c *controller.Controller) error {
	cat := c.Catalog()
	idx, err := s.renderer.driver.Select(ctx, SelectConfig{
		Message:      "Jump to section",
		Options:      sectionTitles(cat),
		DefaultIndex: c.State().Index,
	})
	if err != nil {
		return err
	}
	return c.Jump(idx)
}

func sectionTitles(cat catalog.Catalog) []string {
	titles := make([]string, len(cat.Sections))
	for i, section := range cat.Sections {
		titles[i] = fmt.Sprintf("%d. %s", i+1, section.Title)
	}
	return titles
}
