package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/render"
	"github.com/goliatone/go-pmsform/pkg/validation"
)

func TestFieldErrorsScopedToSection(t *testing.T) {
	section := catalog.Section{ID: "s", Questions: []catalog.Question{
		{ID: "name", Type: catalog.QuestionTypeText},
		{ID: "email", Type: catalog.QuestionTypeText},
	}}
	errs := validation.Errors{
		"name":    validation.RequiredMessage,
		"email":   "  ",
		"goals":   validation.RequiredMessage,
		"missing": "x",
	}

	got := render.FieldErrors(section, errs)
	want := map[string]string{"name": validation.RequiredMessage}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	if got := render.FieldErrors(section, validation.Errors{"goals": "x"}); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
