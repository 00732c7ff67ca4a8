package answers_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pmsform/pkg/answers"
)

func TestMultiCollapsesDuplicatesAndIgnoresOrder(t *testing.T) {
	a := answers.Multi("b", "a", "b")
	b := answers.Multi("a", "b")

	if !a.Equal(b) {
		t.Fatalf("expected %v to equal %v", a.Values(), b.Values())
	}
	if diff := cmp.Diff([]string{"a", "b"}, a.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestToggle(t *testing.T) {
	v := answers.Multi()
	v = v.Toggle("wifi", true)
	v = v.Toggle("pos", true)
	v = v.Toggle("wifi", true)

	if diff := cmp.Diff([]string{"pos", "wifi"}, v.Values()); diff != "" {
		t.Fatalf("after checks (-want +got):\n%s", diff)
	}

	v = v.Toggle("pos", false).Toggle("wifi", false)
	if !v.IsMulti() {
		t.Fatalf("expected multi kind after unchecking everything, got %s", v.Kind())
	}
	if !v.IsEmpty() {
		t.Fatalf("expected empty set, got %v", v.Values())
	}
}

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		name  string
		value answers.Value
		want  bool
	}{
		{name: "zero", value: answers.Value{}, want: true},
		{name: "empty scalar", value: answers.Scalar(""), want: true},
		{name: "whitespace scalar", value: answers.Scalar(" "), want: false},
		{name: "scalar", value: answers.Scalar("Ada"), want: false},
		{name: "empty set", value: answers.Multi(), want: true},
		{name: "set", value: answers.Multi("a"), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.value.IsEmpty(); got != tc.want {
				t.Fatalf("IsEmpty() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	if !answers.Scalar("yes").Contains("yes") {
		t.Fatalf("scalar should contain its own value")
	}
	if answers.Scalar("no").Contains("yes") {
		t.Fatalf("scalar should not contain a different value")
	}
	if !answers.Multi("no", "yes").Contains("yes") {
		t.Fatalf("set should contain member")
	}
	if (answers.Value{}).Contains("") {
		t.Fatalf("zero value contains nothing")
	}
}

func TestValueJSON(t *testing.T) {
	payload := map[string]answers.Value{
		"name":  answers.Scalar("Ada"),
		"goals": answers.Multi("saas_platform", "automate_operations"),
		"empty": answers.Multi(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"empty":[],"goals":["automate_operations","saas_platform"],"name":"Ada"}`
	if string(data) != want {
		t.Fatalf("json mismatch\nwant: %s\n got: %s", want, data)
	}
}

func TestFromAnyRejectsNonStrings(t *testing.T) {
	_, err := answers.FromAny([]any{"a", 3.0})
	if !errors.Is(err, answers.ErrUnsupportedValue) {
		t.Fatalf("expected ErrUnsupportedValue, got %v", err)
	}
	_, err = answers.FromAny(true)
	if !errors.Is(err, answers.ErrUnsupportedValue) {
		t.Fatalf("expected ErrUnsupportedValue for bool, got %v", err)
	}
}
