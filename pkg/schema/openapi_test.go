package schema_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/schema"
	"github.com/goliatone/go-pmsform/pkg/testsupport"
)

func TestJSONProducesValidDocument(t *testing.T) {
	out, err := schema.JSON(context.Background(), testsupport.SmallCatalog(), schema.Options{Version: "2.0.0"})
	if err != nil {
		t.Fatalf("json: %v", err)
	}

	var doc struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		Paths      map[string]map[string]any `json:"paths"`
		Components struct {
			Schemas map[string]struct {
				Required   []string                  `json:"required"`
				Properties map[string]map[string]any `json:"properties"`
			} `json:"schemas"`
		} `json:"components"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.OpenAPI != "3.0.3" || doc.Info.Title != "Small form" || doc.Info.Version != "2.0.0" {
		t.Fatalf("unexpected header %+v", doc.Info)
	}
	if _, ok := doc.Paths["/submissions"]["post"]; !ok {
		t.Fatalf("missing POST /submissions")
	}
	if _, ok := doc.Paths["/submissions/{id}"]["get"]; !ok {
		t.Fatalf("missing GET /submissions/{id}")
	}

	formData := doc.Components.Schemas[schema.FormDataSchema]
	if diff := cmp.Diff([]string{"name", "features", "model"}, formData.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if got := formData.Properties["features"]["type"]; got != "array" {
		t.Fatalf("multiselect type = %v", got)
	}
	if got := formData.Properties["model"]["enum"]; !cmp.Equal(got, []any{"cloud", "onprem"}) {
		t.Fatalf("model enum = %v", got)
	}
	if got := formData.Properties["bio"]["x-question-type"]; got != "textarea" {
		t.Fatalf("extension = %v", got)
	}

	record := doc.Components.Schemas[schema.RecordSchema]
	for _, name := range []string{"form_data", "submitter_name", "target_timeline", "deployment_model", "multi_property_support", "white_labeled"} {
		if _, ok := record.Properties[name]; !ok {
			t.Fatalf("record schema missing %q", name)
		}
	}
}

func TestValidateFormData(t *testing.T) {
	cat := testsupport.SmallCatalog()
	valid := answers.Map{
		"name":     answers.Scalar("Ada"),
		"features": answers.Multi("booking"),
		"model":    answers.Scalar("cloud"),
	}
	if err := schema.ValidateFormData(cat, valid); err != nil {
		t.Fatalf("valid answers rejected: %v", err)
	}

	cases := map[string]answers.Map{
		"unknown option":   {"name": answers.Scalar("Ada"), "features": answers.Multi("sauna"), "model": answers.Scalar("cloud")},
		"missing required": {"name": answers.Scalar("Ada")},
		"unknown key":      {"name": answers.Scalar("Ada"), "features": answers.Multi(), "model": answers.Scalar("cloud"), "extra": answers.Scalar("x")},
		"wrong shape":      {"name": answers.Multi("Ada"), "features": answers.Multi(), "model": answers.Scalar("cloud")},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			if err := schema.ValidateFormData(cat, values); !errors.Is(err, schema.ErrInvalidFormData) {
				t.Fatalf("expected ErrInvalidFormData, got %v", err)
			}
		})
	}
}
