package submission_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/submission"
)

func TestDefaultDerivationBuild(t *testing.T) {
	values := answers.Map{
		"contact_name":           answers.Scalar("Ada"),
		"target_timeline":        answers.Scalar("Q2"),
		"deployment_model":       answers.Scalar("cloud"),
		"multi_property_support": answers.Scalar("yes"),
		"white_labeled":          answers.Multi("no", "yes"),
	}

	record := submission.DefaultDerivation().Build(values)

	if record.SubmitterName != "Ada" {
		t.Fatalf("submitter fallback to contact_name failed: %q", record.SubmitterName)
	}
	if record.TargetTimeline != "Q2" || record.DeploymentModel != "cloud" {
		t.Fatalf("unexpected scalar fields: %+v", record)
	}
	if !record.MultiPropertySupport {
		t.Fatalf("scalar sentinel should set flag")
	}
	if !record.WhiteLabeled {
		t.Fatalf("set containing sentinel should set flag")
	}
	if !record.FormData.Equal(values) {
		t.Fatalf("form data should carry the full answer map")
	}
}

func TestBuildPrefersSubmitterName(t *testing.T) {
	record := submission.DefaultDerivation().Build(answers.Map{
		"submitter_name": answers.Scalar("Grace"),
		"contact_name":   answers.Scalar("Ada"),
	})
	if record.SubmitterName != "Grace" {
		t.Fatalf("submitter = %q", record.SubmitterName)
	}

	record = submission.DefaultDerivation().Build(answers.Map{
		"submitter_name": answers.Scalar(""),
		"contact_name":   answers.Scalar("Ada"),
	})
	if record.SubmitterName != "Ada" {
		t.Fatalf("empty submitter should fall back, got %q", record.SubmitterName)
	}
}

func TestBuildDefaultsWhenMissing(t *testing.T) {
	record := submission.DefaultDerivation().Build(answers.Map{
		"white_labeled": answers.Scalar("no"),
	})
	want := submission.Record{
		FormData:     answers.Map{"white_labeled": answers.Scalar("no")},
		WhiteLabeled: false,
	}
	if diff := cmp.Diff(want.FormData.Plain(), record.FormData.Plain()); diff != "" {
		t.Fatalf("form data mismatch (-want +got):\n%s", diff)
	}
	if record.SubmitterName != "" || record.TargetTimeline != "" || record.DeploymentModel != "" {
		t.Fatalf("expected empty strings, got %+v", record)
	}
	if record.MultiPropertySupport || record.WhiteLabeled {
		t.Fatalf("expected false flags, got %+v", record)
	}
}

func TestBuildDoesNotAliasAnswers(t *testing.T) {
	values := answers.Map{"goal": answers.Multi("a")}
	record := submission.DefaultDerivation().Build(values)
	values.Set("goal", answers.Multi("b"))
	if !record.FormData["goal"].Equal(answers.Multi("a")) {
		t.Fatalf("record shares storage with the live answer map")
	}
}

func TestDerivationForCatalogOverrides(t *testing.T) {
	cat := catalog.Catalog{
		Sections: []catalog.Section{{ID: "s"}},
		Derived: &catalog.Derivation{
			TargetTimeline: []string{"mvp_timeline"},
			WhiteLabeled:   []string{"white_label"},
			Sentinel:       "si",
		},
	}
	d := submission.DerivationFor(cat)

	if diff := cmp.Diff([]string{"mvp_timeline"}, d.TargetTimeline); diff != "" {
		t.Fatalf("timeline ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"submitter_name", "contact_name"}, d.SubmitterName); diff != "" {
		t.Fatalf("submitter ids should keep defaults (-want +got):\n%s", diff)
	}

	record := d.Build(answers.Map{
		"mvp_timeline": answers.Scalar("6 months"),
		"white_label":  answers.Scalar("si"),
	})
	if record.TargetTimeline != "6 months" || !record.WhiteLabeled {
		t.Fatalf("override not applied: %+v", record)
	}
}
