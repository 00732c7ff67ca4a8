package answers_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/catalog"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		Sections: []catalog.Section{
			{
				ID: "basics",
				Questions: []catalog.Question{
					{ID: "name", Type: catalog.QuestionTypeText, Required: true},
					{ID: "goal", Type: catalog.QuestionTypeMultiSelect, Options: []catalog.Option{{Value: "a"}, {Value: "b"}}},
					{ID: "model", Type: catalog.QuestionTypeRadio, Options: []catalog.Option{{Value: "cloud"}}},
				},
			},
		},
	}
}

func TestDecode(t *testing.T) {
	got, err := answers.Decode(testCatalog(), map[string]any{
		"name":  "Ada",
		"goal":  []any{"b", "a"},
		"model": nil,
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := answers.Map{
		"name": answers.Scalar("Ada"),
		"goal": answers.Multi("a", "b"),
	}
	if !want.Equal(got) {
		t.Fatalf("decoded map mismatch:\nwant %v\n got %v", want.Plain(), got.Plain())
	}
}

func TestDecodeRejectsUnknownIDsAndKindMismatch(t *testing.T) {
	_, err := answers.Decode(testCatalog(), map[string]any{
		"unknown": "x",
		"goal":    "a",
		"name":    []any{"Ada"},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, answers.ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion in %v", err)
	}
	if !errors.Is(err, answers.ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch in %v", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	got, err := answers.DecodeJSON(testCatalog(), []byte(`{"name":"Grace","goal":[]}`))
	if err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"name": "Grace", "goal": []string{}}, got.Plain()); diff != "" {
		t.Fatalf("plain mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := answers.Map{"goal": answers.Multi("a")}
	clone := original.Clone()
	clone.Set("goal", clone["goal"].Toggle("b", true))
	clone.Set("name", answers.Scalar("x"))

	if len(original) != 1 || !original["goal"].Equal(answers.Multi("a")) {
		t.Fatalf("original mutated: %v", original.Plain())
	}
}

func TestMapKeysSorted(t *testing.T) {
	m := answers.Map{"b": answers.Scalar("1"), "a": answers.Scalar("2")}
	if diff := cmp.Diff([]string{"a", "b"}, m.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}
