// Package html renders questionnaire sections as HTML forms using pongo2
// templates and decodes posted forms back into field change events.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/controller"
	"github.com/goliatone/go-pmsform/pkg/render"
	rendertemplate "github.com/goliatone/go-pmsform/pkg/render/template"
	"github.com/goliatone/go-pmsform/pkg/render/template/pongo"
)

// Name is the registry name of the HTML renderer.
const Name = "html"

const (
	sectionTemplate = "section.tmpl"
	pageTemplate    = "page.tmpl"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	policy     *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// section.tmpl and page.tmpl at its root.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithPolicy replaces the sanitizer applied to catalog text.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// Renderer implements render.SectionRenderer.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
}

var _ render.SectionRenderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.policy == nil {
		cfg.policy = DefaultPolicy()
	}

	engine, err := pongo.New(cfg.templateFS,
		pongo.WithExtension(".tmpl"),
		pongo.WithSetName("pmsform-html"),
		pongo.WithGlobals(map[string]any{"classes": classContext()}),
	)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	return &Renderer{templates: engine, policy: cfg.policy}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderSection renders view as a complete <form> element.
func (r *Renderer) RenderSection(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.execute(sectionTemplate, view, opts)
}

// RenderPage renders the section wrapped in a complete HTML document, used
// when serving the questionnaire directly.
func (r *Renderer) RenderPage(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.execute(pageTemplate, view, opts)
}

func (r *Renderer) execute(name string, view render.View, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	result, err := r.templates.RenderTemplate(name, r.context(view, opts))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) context(view render.View, opts render.RenderOptions) map[string]any {
	fieldErrors := render.FieldErrors(view.Section, view.Errors)

	questions := make([]map[string]any, 0, len(view.Section.Questions))
	for _, q := range view.Section.Questions {
		questions = append(questions, r.question(q, view, fieldErrors[q.ID]))
	}

	steps := make([]map[string]any, 0, len(view.Steps))
	for _, step := range view.Steps {
		steps = append(steps, map[string]any{
			"index":  step.Index,
			"title":  step.Title,
			"status": string(step.Status),
		})
	}

	hidden := render.MergeHiddenFields(opts.Hidden, render.SectionField(view.Index))
	hiddenFields := make([]map[string]any, 0, len(hidden))
	for _, field := range render.SortedHiddenFields(hidden) {
		hiddenFields = append(hiddenFields, map[string]any{"name": field.Name, "value": field.Value})
	}

	return map[string]any{
		"form": map[string]any{
			"title":  view.FormTitle,
			"action": opts.Action,
		},
		"section": map[string]any{
			"id":          view.Section.ID,
			"title":       sanitize(r.policy, view.Section.Title),
			"description": sanitize(r.policy, view.Section.Description),
		},
		"progress": map[string]any{
			"current": view.Progress.Current,
			"total":   view.Progress.Total,
			"percent": view.Progress.Percent,
		},
		"steps":       steps,
		"questions":   questions,
		"hidden":      hiddenFields,
		"form_errors": render.MergeFormErrors(opts.FormErrors),
		"notices":     render.MergeFormErrors(opts.Notices),
		"can_retreat": view.CanRetreat,
		"is_last":     view.IsLast,
		"submitting":  view.Phase == controller.PhaseSubmitting,
	}
}

func (r *Renderer) question(q catalog.Question, view render.View, message string) map[string]any {
	options := make([]map[string]any, 0, len(q.Options))
	for _, opt := range q.Options {
		options = append(options, map[string]any{
			"value": opt.Value,
			"label": sanitize(r.policy, opt.Label),
		})
	}

	value := view.Value(q.ID)
	var current any
	switch {
	case q.Type.IsMulti():
		current = value.Values()
	default:
		current = value.String()
	}

	return map[string]any{
		"id":          q.ID,
		"dom_id":      "q-" + q.ID,
		"label":       sanitize(r.policy, q.Label),
		"type":        string(q.Type),
		"required":    q.Required,
		"placeholder": q.Placeholder,
		"options":     options,
		"value":       current,
		"error":       message,
	}
}
