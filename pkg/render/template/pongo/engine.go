// Package pongo implements template.TemplateRenderer with pongo2 (Django
// style templates).
package pongo

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-pmsform/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	name      string
	extension string
	globals   pongo2.Context
}

// WithExtension overrides the template extension (default ".tpl").
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// WithSetName names the pongo2 template set in error messages.
func WithSetName(name string) Option {
	return func(cfg *config) {
		if name = strings.TrimSpace(name); name != "" {
			cfg.name = name
		}
	}
}

// WithGlobals adds values visible to every template. Per-render data wins on
// key collisions.
func WithGlobals(values map[string]any) Option {
	return func(cfg *config) {
		for key, value := range values {
			cfg.globals[key] = value
		}
	}
}

// Engine holds every template of a bundle, compiled up front.
type Engine struct {
	templates map[string]*pongo2.Template
	ext       string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New compiles every template with the configured extension found at the
// root of files. A template that fails to parse fails construction.
func New(files fs.FS, options ...Option) (*Engine, error) {
	if files == nil {
		return nil, errors.New("pongo: template fs is required")
	}
	cfg := config{name: "pmsform", extension: ".tpl", globals: pongo2.Context{}}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	registerDefaultFilters()

	set := pongo2.NewSet(cfg.name, pongo2.NewFSLoader(files))
	set.Globals = cfg.globals

	names, err := fs.Glob(files, "*"+cfg.extension)
	if err != nil {
		return nil, fmt.Errorf("pongo: list templates: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("pongo: no %s templates found", cfg.extension)
	}

	engine := &Engine{templates: make(map[string]*pongo2.Template, len(names)), ext: cfg.extension}
	for _, name := range names {
		tmpl, err := set.FromFile(name)
		if err != nil {
			return nil, fmt.Errorf("pongo: compile %s: %w", name, err)
		}
		engine.templates[name] = tmpl
	}
	return engine, nil
}

// RenderTemplate executes the named template. The extension may be omitted.
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, ok := e.templates[name]
	if !ok {
		return "", fmt.Errorf("pongo: unknown template %q", name)
	}
	out, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("pongo: execute %s: %w", name, err)
	}
	return out, nil
}
