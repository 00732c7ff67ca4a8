package render

import (
	"fmt"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/controller"
	"github.com/goliatone/go-pmsform/pkg/validation"
)

// View is a read-only snapshot of everything a renderer needs to draw the
// current section.
type View struct {
	FormTitle  string
	Section    catalog.Section
	Index      int
	Progress   controller.Progress
	Steps      []controller.Step
	Answers    answers.Map
	Errors     validation.Errors
	Phase      controller.Phase
	CanRetreat bool
	IsLast     bool
}

// ViewOf snapshots the controller's current section.
func ViewOf(c *controller.Controller) View {
	state := c.State()
	view, _ := build(c.Catalog(), state.Index, state.Answers, state.Errors)
	view.Phase = state.Phase
	view.CanRetreat = view.CanRetreat && state.Phase == controller.PhaseViewing
	return view
}

// ViewAt builds a view for section index of cat without a controller, used for
// previews.
func ViewAt(cat catalog.Catalog, index int, values answers.Map, errs validation.Errors) (View, error) {
	return build(cat, index, values, errs)
}

func build(cat catalog.Catalog, index int, values answers.Map, errs validation.Errors) (View, error) {
	section, ok := cat.Section(index)
	if !ok {
		return View{}, fmt.Errorf("render: section index %d out of range", index)
	}
	if values == nil {
		values = answers.Map{}
	}
	if errs == nil {
		errs = validation.Errors{}
	}
	return View{
		FormTitle:  cat.Title,
		Section:    section,
		Index:      index,
		Progress:   controller.ProgressOf(index, cat.Len()),
		Steps:      controller.StepsOf(cat, index),
		Answers:    values,
		Errors:     errs,
		CanRetreat: index > 0,
		IsLast:     index == cat.LastIndex(),
	}, nil
}

// Value returns the answer for question id, or the zero value.
func (v View) Value(id string) answers.Value {
	value, _ := v.Answers.Get(id)
	return value
}
