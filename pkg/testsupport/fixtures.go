package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pmsform/pkg/catalog"
)

// LoadCatalog reads and validates a catalog fixture.
func LoadCatalog(t *testing.T, path string) catalog.Catalog {
	t.Helper()

	cat, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

// SmallCatalog is a three section catalog covering every question type.
// The derived block points at its own ids.
func SmallCatalog() catalog.Catalog {
	return catalog.Catalog{
		ID:    "small",
		Title: "Small form",
		Sections: []catalog.Section{
			{ID: "about", Title: "About you", Description: "Who is filling this in", Questions: []catalog.Question{
				{ID: "name", Label: "Your name", Type: catalog.QuestionTypeText, Required: true, Placeholder: "Ada Lovelace"},
				{ID: "bio", Label: "Short bio", Type: catalog.QuestionTypeTextarea},
			}},
			{ID: "needs", Title: "Needs", Questions: []catalog.Question{
				{ID: "features", Label: "Features", Type: catalog.QuestionTypeMultiSelect, Required: true, Options: []catalog.Option{
					{Value: "booking", Label: "Booking engine"},
					{Value: "channel", Label: "Channel manager"},
				}},
				{ID: "white_label", Label: "White label?", Type: catalog.QuestionTypeRadio, Options: []catalog.Option{
					{Value: "yes", Label: "Yes"},
					{Value: "no", Label: "No"},
				}},
			}},
			{ID: "deploy", Title: "Deployment", Questions: []catalog.Question{
				{ID: "model", Label: "Model", Type: catalog.QuestionTypeSelect, Required: true, Options: []catalog.Option{
					{Value: "cloud", Label: "Cloud"},
					{Value: "onprem", Label: "On premise"},
				}},
			}},
		},
		Derived: &catalog.Derivation{
			SubmitterName:   []string{"name"},
			DeploymentModel: []string{"model"},
			WhiteLabeled:    []string{"white_label"},
		},
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
