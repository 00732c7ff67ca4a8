package controller_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/controller"
	"github.com/goliatone/go-pmsform/pkg/submission"
	"github.com/goliatone/go-pmsform/pkg/validation"
)

func threeSections() catalog.Catalog {
	return catalog.Catalog{
		ID: "test",
		Sections: []catalog.Section{
			{ID: "about", Title: "About", Questions: []catalog.Question{
				{ID: "name", Label: "Name", Type: catalog.QuestionTypeText, Required: true},
			}},
			{ID: "needs", Title: "Needs", Questions: []catalog.Question{
				{ID: "goals", Label: "Goals", Type: catalog.QuestionTypeMultiSelect, Required: true, Options: []catalog.Option{
					{Value: "a", Label: "A"}, {Value: "b", Label: "B"},
				}},
				{ID: "notes", Label: "Notes", Type: catalog.QuestionTypeTextarea},
			}},
			{ID: "deploy", Title: "Deploy", Questions: []catalog.Question{
				{ID: "model", Label: "Model", Type: catalog.QuestionTypeRadio, Required: true, Options: []catalog.Option{
					{Value: "cloud", Label: "Cloud"}, {Value: "onprem", Label: "On premise"},
				}},
			}},
		},
	}
}

func reducer() controller.Reducer {
	d := submission.DefaultDerivation()
	d.SubmitterName = []string{"name"}
	d.DeploymentModel = []string{"model"}
	return controller.Reducer{Catalog: threeSections(), Derivation: d}
}

func TestReduceAdvanceBlocksOnRequired(t *testing.T) {
	r := reducer()
	s := controller.NewState()

	next, effects, err := r.Reduce(s, controller.Advanced{})
	if !errors.Is(err, controller.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if len(effects) != 0 {
		t.Fatalf("unexpected effects %v", effects)
	}
	if next.Index != 0 {
		t.Fatalf("index = %d, want 0", next.Index)
	}
	want := validation.Errors{"name": validation.RequiredMessage}
	if diff := cmp.Diff(want, next.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if len(s.Errors) != 0 {
		t.Fatalf("input state mutated: %v", s.Errors)
	}

	next, _, err = r.Reduce(next, controller.FieldChanged{QuestionID: "name", Value: answers.Scalar("Ada")})
	if err != nil {
		t.Fatalf("field change: %v", err)
	}
	if next.Index != 0 || len(next.Errors) != 0 {
		t.Fatalf("expected cleared errors on section 0, got index %d errors %v", next.Index, next.Errors)
	}

	next, effects, err = r.Reduce(next, controller.Advanced{})
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if next.Index != 1 {
		t.Fatalf("index = %d, want 1", next.Index)
	}
	if diff := cmp.Diff([]controller.Effect{controller.ScrollTop{}}, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
}

func TestReduceFieldChangeOnlyClearsOwnError(t *testing.T) {
	r := reducer()
	s := controller.NewState()
	s.Index = 1
	s.Errors = validation.Errors{"goals": validation.RequiredMessage, "notes": "other"}

	next, _, err := r.Reduce(s, controller.FieldChanged{QuestionID: "goals", Value: answers.Multi("a")})
	if err != nil {
		t.Fatalf("field change: %v", err)
	}
	if diff := cmp.Diff(validation.Errors{"notes": "other"}, next.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if _, ok := s.Answers.Get("goals"); ok {
		t.Fatalf("input answers mutated")
	}
}

func TestReduceUncheckedMultiselectStaysUnsatisfied(t *testing.T) {
	r := reducer()
	s := controller.NewState()
	s.Index = 1

	v := answers.Multi().Toggle("a", true)
	s, _, _ = r.Reduce(s, controller.FieldChanged{QuestionID: "goals", Value: v})
	s, _, _ = r.Reduce(s, controller.FieldChanged{QuestionID: "goals", Value: v.Toggle("a", false)})

	got, ok := s.Answers.Get("goals")
	if !ok || !got.IsMulti() || !got.IsEmpty() {
		t.Fatalf("expected an empty multi value, got %v (present %v)", got, ok)
	}

	next, _, err := r.Reduce(s, controller.Advanced{})
	if !errors.Is(err, controller.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if !next.Errors.Has("goals") || next.Index != 1 {
		t.Fatalf("expected goals error on section 1, got %+v", next)
	}
}

func TestReduceRetreatAndJumpKeepErrors(t *testing.T) {
	r := reducer()
	s := controller.NewState()
	s.Index = 2
	s.Errors = validation.Errors{"model": validation.RequiredMessage}

	back, effects, err := r.Reduce(s, controller.Retreated{})
	if err != nil {
		t.Fatalf("retreat: %v", err)
	}
	if back.Index != 1 || len(effects) != 1 {
		t.Fatalf("retreat: index %d effects %v", back.Index, effects)
	}
	if diff := cmp.Diff(s.Errors, back.Errors); diff != "" {
		t.Fatalf("retreat touched errors (-want +got):\n%s", diff)
	}

	jumped, _, err := r.Reduce(back, controller.Jumped{Index: 0})
	if err != nil {
		t.Fatalf("jump: %v", err)
	}
	if jumped.Index != 0 {
		t.Fatalf("jump index = %d", jumped.Index)
	}
	if diff := cmp.Diff(s.Errors, jumped.Errors); diff != "" {
		t.Fatalf("jump touched errors (-want +got):\n%s", diff)
	}

	again, effects, err := r.Reduce(jumped, controller.Jumped{Index: 0})
	if err != nil || len(effects) != 0 || again.Index != 0 {
		t.Fatalf("second jump not idempotent: %+v %v %v", again, effects, err)
	}

	if _, _, err := r.Reduce(again, controller.Retreated{}); !errors.Is(err, controller.ErrFirstSection) {
		t.Fatalf("expected ErrFirstSection, got %v", err)
	}
	for _, idx := range []int{-1, 3} {
		if _, _, err := r.Reduce(again, controller.Jumped{Index: idx}); !errors.Is(err, controller.ErrIndexOutOfRange) {
			t.Fatalf("jump %d: expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
}

func TestReduceSubmitLifecycle(t *testing.T) {
	r := reducer()
	s := controller.NewState()
	s.Answers = answers.Map{
		"name":  answers.Scalar("Ada"),
		"goals": answers.Multi("a"),
	}

	if _, _, err := r.Reduce(s, controller.SubmitRequested{}); !errors.Is(err, controller.ErrNotLastSection) {
		t.Fatalf("expected ErrNotLastSection, got %v", err)
	}

	s.Index = 2
	blocked, _, err := r.Reduce(s, controller.SubmitRequested{})
	if !errors.Is(err, controller.ErrIncomplete) || blocked.Phase != controller.PhaseViewing {
		t.Fatalf("expected incomplete submit, got %v phase %s", err, blocked.Phase)
	}

	s.Answers.Set("model", answers.Scalar("cloud"))
	pending, effects, err := r.Reduce(s, controller.SubmitRequested{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !pending.Submitting() {
		t.Fatalf("expected submitting phase, got %s", pending.Phase)
	}
	if len(effects) != 1 {
		t.Fatalf("expected a persist effect, got %v", effects)
	}
	persist, ok := effects[0].(controller.Persist)
	if !ok {
		t.Fatalf("expected Persist, got %T", effects[0])
	}
	if persist.Record.DeploymentModel != "cloud" {
		t.Fatalf("deployment model = %q", persist.Record.DeploymentModel)
	}

	for _, ev := range []controller.Event{
		controller.SubmitRequested{},
		controller.Advanced{},
		controller.FieldChanged{QuestionID: "name", Value: answers.Scalar("Bob")},
	} {
		if _, _, err := r.Reduce(pending, ev); !errors.Is(err, controller.ErrSubmitInFlight) {
			t.Fatalf("%T while pending: expected ErrSubmitInFlight, got %v", ev, err)
		}
	}

	failed, effects, err := r.Reduce(pending, controller.SubmitFailed{Err: errors.New("boom")})
	if err != nil {
		t.Fatalf("failed: %v", err)
	}
	if failed.Phase != controller.PhaseViewing || failed.Index != 2 || !failed.Answers.Equal(s.Answers) {
		t.Fatalf("failure did not restore the form: %+v", failed)
	}
	if diff := cmp.Diff([]controller.Effect{controller.Notify{Notification: controller.FailureNotification}}, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}

	done, effects, err := r.Reduce(pending, controller.SubmitSucceeded{Stored: submission.StoredRecord{ID: "rec-1"}})
	if err != nil {
		t.Fatalf("succeeded: %v", err)
	}
	if done.Phase != controller.PhaseSubmitted || done.Stored.ID != "rec-1" {
		t.Fatalf("unexpected state %+v", done)
	}
	if len(effects) != 2 {
		t.Fatalf("expected notify and submitted effects, got %v", effects)
	}
	if _, _, err := r.Reduce(done, controller.Retreated{}); !errors.Is(err, controller.ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}

	fresh, _, err := r.Reduce(done, controller.ResetRequested{})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if fresh.Index != 0 || len(fresh.Answers) != 0 || fresh.Phase != controller.PhaseViewing {
		t.Fatalf("reset state %+v", fresh)
	}
}

func TestReduceAdvanceOnLastSectionStays(t *testing.T) {
	r := reducer()
	s := controller.NewState()
	s.Index = 2
	s.Answers = answers.Map{"model": answers.Scalar("onprem")}

	next, effects, err := r.Reduce(s, controller.Advanced{})
	if err != nil || next.Index != 2 || len(effects) != 0 {
		t.Fatalf("advance on last: index %d effects %v err %v", next.Index, effects, err)
	}
}
