// Package tui runs the questionnaire on a terminal. Prompts go through a
// PromptDriver (survey/v2 by default) and section headers are styled with
// lipgloss.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/controller"
	"github.com/goliatone/go-pmsform/pkg/render"
)

// Renderer prompts for single questions and draws section headers.
type Renderer struct {
	driver PromptDriver
	out    io.Writer
	theme  Theme
	logger *slog.Logger
}

// New constructs a renderer with defaults (survey driver on stdout).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		out:    os.Stdout,
		theme:  DefaultTheme(),
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Prompt asks for one answer. value pre-fills the control and message, when
// set, is shown first as the field's validation error. Text questions return
// the raw string, choice questions the selected option value and multiselect
// questions the set obtained by toggling every option against value.
func (r *Renderer) Prompt(ctx context.Context, q catalog.Question, value answers.Value, message string) (answers.Value, error) {
	if ctx == nil {
		return answers.Value{}, errors.New("tui: context is required")
	}
	if r.driver == nil {
		return answers.Value{}, errors.New("tui: prompt driver is nil")
	}
	if message != "" {
		if err := r.driver.Info(ctx, r.theme.Error.Render(fmt.Sprintf("%s: %s", q.Label, message))); err != nil {
			return answers.Value{}, err
		}
	}

	label := r.label(q)
	switch q.Type {
	case catalog.QuestionTypeTextarea:
		resp, err := r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: value.String(), Help: q.Placeholder})
		if err != nil {
			return answers.Value{}, err
		}
		return answers.Scalar(resp), nil
	case catalog.QuestionTypeSelect, catalog.QuestionTypeRadio:
		return r.promptChoice(ctx, q, label, value)
	case catalog.QuestionTypeMultiSelect:
		return r.promptMulti(ctx, q, label, value)
	default:
		resp, err := r.driver.Input(ctx, InputConfig{Message: label, Default: value.String(), Help: q.Placeholder})
		if err != nil {
			return answers.Value{}, err
		}
		return answers.Scalar(resp), nil
	}
}

func (r *Renderer) promptChoice(ctx context.Context, q catalog.Question, label string, value answers.Value) (answers.Value, error) {
	labels := optionLabels(q)
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      labels,
		DefaultIndex: optionIndex(q, value.String()),
		Help:         q.Placeholder,
	})
	if err != nil {
		return answers.Value{}, err
	}
	if idx < 0 || idx >= len(q.Options) {
		return answers.Value{}, fmt.Errorf("tui: question %q: selection %d out of range", q.ID, idx)
	}
	return answers.Scalar(q.Options[idx].Value), nil
}

func (r *Renderer) promptMulti(ctx context.Context, q catalog.Question, label string, value answers.Value) (answers.Value, error) {
	var defaults []int
	for i, opt := range q.Options {
		if value.Contains(opt.Value) {
			defaults = append(defaults, i)
		}
	}
	picked, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:      label,
		Options:      optionLabels(q),
		DefaultIndex: -1,
		Defaults:     defaults,
		Help:         q.Placeholder,
	})
	if err != nil {
		return answers.Value{}, err
	}

	checked := make(map[int]bool, len(picked))
	for _, idx := range picked {
		checked[idx] = true
	}
	next := value
	if !next.IsMulti() {
		next = answers.Multi()
	}
	for i, opt := range q.Options {
		next = next.Toggle(opt.Value, checked[i])
	}
	return next, nil
}

func (r *Renderer) label(q catalog.Question) string {
	if q.Required {
		return q.Label + r.theme.Required
	}
	return q.Label
}

// Header renders the styled progress header for view.
func (r *Renderer) Header(view render.View) string {
	var b strings.Builder
	if view.FormTitle != "" {
		b.WriteString(r.theme.Title.Render(view.FormTitle))
		b.WriteString("\n")
	}
	b.WriteString(r.theme.Progress.Render(progressLine(view.Progress)))
	b.WriteString("\n")
	for _, step := range view.Steps {
		style := r.theme.StepUpcoming
		marker := " "
		switch step.Status {
		case controller.StepCurrent:
			style, marker = r.theme.StepCurrent, ">"
		case controller.StepComplete:
			style, marker = r.theme.StepComplete, "x"
		}
		b.WriteString(style.Render(fmt.Sprintf("[%s] %d. %s", marker, step.Index+1, step.Title)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(r.theme.Title.Render(view.Section.Title))
	if view.Section.Description != "" {
		b.WriteString("\n")
		b.WriteString(view.Section.Description)
	}
	return b.String()
}

func progressLine(p controller.Progress) string {
	const width = 20
	filled := p.Percent * width / 100
	return fmt.Sprintf("Section %d of %d [%s%s] %d%%",
		p.Current, p.Total, strings.Repeat("#", filled), strings.Repeat("-", width-filled), p.Percent)
}

func optionLabels(q catalog.Question) []string {
	labels := make([]string, len(q.Options))
	for i, opt := range q.Options {
		labels[i] = opt.Label
		if labels[i] == "" {
			labels[i] = opt.Value
		}
	}
	return labels
}

func optionIndex(q catalog.Question, value string) int {
	for i, opt := range q.Options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}
