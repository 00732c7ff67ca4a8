package controller

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/submission"
	"github.com/goliatone/go-pmsform/pkg/validation"
)

var (
	// ErrSubmitInFlight rejects events while a submission is pending.
	ErrSubmitInFlight = errors.New("controller: submission in progress")
	// ErrAlreadySubmitted rejects edits and navigation after a successful
	// submission. Only a reset is accepted.
	ErrAlreadySubmitted = errors.New("controller: form already submitted")
	// ErrFirstSection rejects Retreat on the first section.
	ErrFirstSection = errors.New("controller: already at the first section")
	// ErrNotLastSection rejects Submit before the last section.
	ErrNotLastSection = errors.New("controller: submit is only available on the last section")
	// ErrIndexOutOfRange rejects jumps outside the catalog.
	ErrIndexOutOfRange = errors.New("controller: section index out of range")
	// ErrIncomplete reports that the section failed validation. The state
	// does change: the error map now lists the unsatisfied questions.
	ErrIncomplete = errors.New("controller: required fields are missing")
	// ErrUnexpectedEvent reports a gateway outcome with no pending submission.
	ErrUnexpectedEvent = errors.New("controller: event not valid in current phase")
)

// Reducer holds the static inputs of the state machine.
type Reducer struct {
	Catalog    catalog.Catalog
	Derivation submission.Derivation
}

// Reduce applies ev to s and returns the next state together with the side
// effects the transition asks for. s is never mutated. A non-nil error
// explains why an event was refused or did not complete; apart from
// ErrIncomplete, a refused event leaves the state untouched.
func (r Reducer) Reduce(s State, ev Event) (State, []Effect, error) {
	switch e := ev.(type) {
	case FieldChanged:
		return r.fieldChanged(s, e)
	case Advanced:
		return r.advanced(s)
	case Retreated:
		return r.retreated(s)
	case Jumped:
		return r.jumped(s, e)
	case SubmitRequested:
		return r.submitRequested(s)
	case SubmitSucceeded:
		return r.submitSucceeded(s, e)
	case SubmitFailed:
		return r.submitFailed(s)
	case ResetRequested:
		return r.reset(s)
	default:
		return s, nil, fmt.Errorf("controller: unknown event %T", ev)
	}
}

func editable(s State) error {
	switch s.Phase {
	case PhaseSubmitting:
		return ErrSubmitInFlight
	case PhaseSubmitted:
		return ErrAlreadySubmitted
	default:
		return nil
	}
}

func (r Reducer) fieldChanged(s State, e FieldChanged) (State, []Effect, error) {
	if err := editable(s); err != nil {
		return s, nil, err
	}
	next := s.Clone()
	if next.Answers == nil {
		next.Answers = answers.Map{}
	}
	next.Answers.Set(e.QuestionID, e.Value)
	delete(next.Errors, e.QuestionID)
	return next, nil, nil
}

// validateCurrent replaces the error map with the result for the current
// section and reports whether it passed.
func (r Reducer) validateCurrent(s State) (State, bool) {
	section, ok := r.Catalog.Section(s.Index)
	next := s.Clone()
	if !ok {
		next.Errors = validation.Errors{}
		return next, true
	}
	next.Errors = validation.ValidateSection(section, s.Answers)
	return next, len(next.Errors) == 0
}

func (r Reducer) advanced(s State) (State, []Effect, error) {
	if err := editable(s); err != nil {
		return s, nil, err
	}
	next, ok := r.validateCurrent(s)
	if !ok {
		return next, nil, ErrIncomplete
	}
	if next.Index >= r.Catalog.LastIndex() {
		return next, nil, nil
	}
	next.Index++
	return next, []Effect{ScrollTop{}}, nil
}

func (r Reducer) retreated(s State) (State, []Effect, error) {
	if err := editable(s); err != nil {
		return s, nil, err
	}
	if s.Index <= 0 {
		return s, nil, ErrFirstSection
	}
	next := s.Clone()
	next.Index--
	return next, []Effect{ScrollTop{}}, nil
}

func (r Reducer) jumped(s State, e Jumped) (State, []Effect, error) {
	if err := editable(s); err != nil {
		return s, nil, err
	}
	if e.Index < 0 || e.Index >= r.Catalog.Len() {
		return s, nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, e.Index)
	}
	if e.Index == s.Index {
		return s, nil, nil
	}
	next := s.Clone()
	next.Index = e.Index
	return next, []Effect{ScrollTop{}}, nil
}

func (r Reducer) submitRequested(s State) (State, []Effect, error) {
	if err := editable(s); err != nil {
		return s, nil, err
	}
	if s.Index != r.Catalog.LastIndex() {
		return s, nil, ErrNotLastSection
	}
	next, ok := r.validateCurrent(s)
	if !ok {
		return next, nil, ErrIncomplete
	}
	next.Phase = PhaseSubmitting
	return next, []Effect{Persist{Record: r.Derivation.Build(next.Answers)}}, nil
}

func (r Reducer) submitSucceeded(s State, e SubmitSucceeded) (State, []Effect, error) {
	if s.Phase != PhaseSubmitting {
		return s, nil, ErrUnexpectedEvent
	}
	next := s.Clone()
	next.Phase = PhaseSubmitted
	next.Stored = e.Stored
	return next, []Effect{
		Notify{Notification: SuccessNotification},
		Submitted{Answers: next.Answers.Clone(), Stored: e.Stored},
	}, nil
}

func (r Reducer) submitFailed(s State) (State, []Effect, error) {
	if s.Phase != PhaseSubmitting {
		return s, nil, ErrUnexpectedEvent
	}
	next := s.Clone()
	next.Phase = PhaseViewing
	return next, []Effect{Notify{Notification: FailureNotification}}, nil
}

func (r Reducer) reset(s State) (State, []Effect, error) {
	if s.Phase != PhaseSubmitted {
		return s, nil, ErrUnexpectedEvent
	}
	return NewState(), []Effect{ScrollTop{}}, nil
}
