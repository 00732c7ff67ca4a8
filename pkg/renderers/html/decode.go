package html

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/controller"
	"github.com/goliatone/go-pmsform/pkg/render"
)

// Form field names used by the default templates besides question ids.
const (
	MultiMarkerField = "_multi"
	ActionField      = "_action"
	JumpField        = "_jump"
)

// ErrUnknownOption is returned when a posted choice is not one of the
// question's options.
var ErrUnknownOption = errors.New("html: unknown option")

// Decode turns a posted section form into field change events. Questions
// absent from the post produce no event. A multiselect rendered by the
// default templates is always reported through the _multi marker, so
// unchecking every box is distinguishable from not posting the question;
// its new set is built by toggling each option against current. Events are
// only produced for values that differ from current.
func Decode(section catalog.Section, current answers.Map, form url.Values) ([]controller.FieldChanged, error) {
	markers := form[MultiMarkerField]

	var (
		events []controller.FieldChanged
		errs   []error
	)
	for _, q := range section.Questions {
		existing, _ := current.Get(q.ID)
		posted, present := form[q.ID]

		var next answers.Value
		switch {
		case q.Type.IsMulti():
			if !present && !slices.Contains(markers, q.ID) {
				continue
			}
			next = existing
			if !next.IsMulti() {
				next = answers.Multi()
			}
			for _, opt := range q.Options {
				next = next.Toggle(opt.Value, slices.Contains(posted, opt.Value))
			}
		case q.Type.HasOptions():
			if !present {
				continue
			}
			choice := strings.TrimSpace(first(posted))
			if choice != "" && !q.HasOption(choice) {
				errs = append(errs, fmt.Errorf("%w: question %q value %q", ErrUnknownOption, q.ID, choice))
				continue
			}
			next = answers.Scalar(choice)
		default:
			if !present {
				continue
			}
			next = answers.Scalar(first(posted))
		}

		if next.Equal(existing) || (existing.Kind() == answers.KindNone && next.IsMulti() && next.IsEmpty()) {
			continue
		}
		events = append(events, controller.FieldChanged{QuestionID: q.ID, Value: next})
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return events, nil
}

// Action is the navigation requested by a posted form.
type Action struct {
	Kind  string // "next", "previous", "submit", "jump" or "" when none
	Index int    // target section for "jump"
}

// DecodeAction reads the navigation buttons from a posted form.
func DecodeAction(form url.Values) (Action, error) {
	if raw := strings.TrimSpace(form.Get(JumpField)); raw != "" {
		idx, err := strconv.Atoi(raw)
		if err != nil {
			return Action{}, fmt.Errorf("html: invalid jump target %q: %w", raw, err)
		}
		return Action{Kind: "jump", Index: idx}, nil
	}
	switch kind := strings.TrimSpace(form.Get(ActionField)); kind {
	case "", "next", "previous", "submit":
		return Action{Kind: kind}, nil
	default:
		return Action{}, fmt.Errorf("html: unknown action %q", kind)
	}
}

// PostedSection returns the section index recorded in the hidden field, or
// -1 when the post does not carry one.
func PostedSection(form url.Values) int {
	idx, err := strconv.Atoi(strings.TrimSpace(form.Get(render.SectionFieldName)))
	if err != nil {
		return -1
	}
	return idx
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
