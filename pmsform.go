package pmsform

import (
	"context"
	"fmt"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/controller"
	"github.com/goliatone/go-pmsform/pkg/render"
	htmlrenderer "github.com/goliatone/go-pmsform/pkg/renderers/html"
	"github.com/goliatone/go-pmsform/pkg/renderers/tui"
)

// Answers aliases answers.Map for callers wiring the on-submitted callback.
type Answers = answers.Map

// RenderOptions describes per-request extras such as hidden fields and
// form-level errors.
type RenderOptions = render.RenderOptions

// NewController builds a controller for the bundled PMS catalog.
func NewController(options ...controller.Option) (*controller.Controller, error) {
	cat, err := DefaultCatalog()
	if err != nil {
		return nil, err
	}
	return controller.New(cat, options...)
}

// NewRegistry returns a registry holding the built-in section renderers:
// "html" and "text". Extra html options configure the HTML renderer.
func NewRegistry(options ...htmlrenderer.Option) (*render.Registry, error) {
	htmlR, err := htmlrenderer.New(options...)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	if err := registry.Register(htmlR, tui.Preview{}); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderSection renders the controller's current section with the named
// renderer from registry.
func RenderSection(ctx context.Context, registry *render.Registry, rendererName string, c *controller.Controller, opts RenderOptions) ([]byte, error) {
	return registry.Render(ctx, rendererName, render.ViewOf(c), opts)
}

// RenderPreview renders section index of cat with the given answers and no
// controller, used by the render command.
func RenderPreview(ctx context.Context, registry *render.Registry, rendererName string, cat catalog.Catalog, index int, values answers.Map, opts RenderOptions) ([]byte, error) {
	view, err := render.ViewAt(cat, index, values, nil)
	if err != nil {
		return nil, fmt.Errorf("pmsform: %w", err)
	}
	return registry.Render(ctx, rendererName, view, opts)
}
