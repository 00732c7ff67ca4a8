package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/controller"
	"github.com/goliatone/go-pmsform/pkg/render"
	"github.com/goliatone/go-pmsform/pkg/testsupport"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) RenderSection(context.Context, render.View, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(namedRenderer("text"), namedRenderer("html"))

	if err := reg.Register(namedRenderer("html")); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := reg.Register(namedRenderer("")); err == nil {
		t.Fatalf("expected empty name error")
	}
	if diff := cmp.Diff([]string{"html", "text"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("text") || reg.Has("pdf") {
		t.Fatalf("Has reported wrong membership")
	}
	if _, err := reg.Get("pdf"); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}

	out, err := reg.Render(context.Background(), "html", render.View{}, render.RenderOptions{})
	if err != nil || string(out) != "html" {
		t.Fatalf("render = %q, %v", out, err)
	}
	if _, err := reg.Render(context.Background(), "pdf", render.View{}, render.RenderOptions{}); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer from Render, got %v", err)
	}
}

func TestViewOfController(t *testing.T) {
	c, err := controller.New(testsupport.SmallCatalog())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_ = c.FieldChange("name", answers.Scalar("Ada"))
	if err := c.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}

	view := render.ViewOf(c)
	if view.Section.ID != "needs" || view.Index != 1 {
		t.Fatalf("unexpected section %q at %d", view.Section.ID, view.Index)
	}
	if diff := cmp.Diff(controller.Progress{Current: 2, Total: 3, Percent: 67}, view.Progress); diff != "" {
		t.Fatalf("progress mismatch (-want +got):\n%s", diff)
	}
	if !view.CanRetreat || view.IsLast {
		t.Fatalf("navigation flags wrong: %+v", view)
	}
	if view.Value("name").String() != "Ada" {
		t.Fatalf("answers not carried into the view")
	}
}

func TestViewAtOutOfRange(t *testing.T) {
	if _, err := render.ViewAt(testsupport.SmallCatalog(), 9, nil, nil); err == nil {
		t.Fatalf("expected range error")
	}
	view, err := render.ViewAt(testsupport.SmallCatalog(), 2, nil, nil)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if !view.IsLast || view.Answers == nil || view.Errors == nil {
		t.Fatalf("unexpected view %+v", view)
	}
}
