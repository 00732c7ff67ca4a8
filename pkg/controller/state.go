package controller

import (
	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/submission"
	"github.com/goliatone/go-pmsform/pkg/validation"
)

// Phase is the coarse state of the form.
type Phase uint8

const (
	PhaseViewing Phase = iota
	PhaseSubmitting
	PhaseSubmitted
)

func (p Phase) String() string {
	switch p {
	case PhaseViewing:
		return "viewing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// State is the full controller state. Values returned by the Controller are
// copies; mutating them has no effect on the controller.
type State struct {
	Index   int
	Answers answers.Map
	Errors  validation.Errors
	Phase   Phase
	// Stored is set once the gateway accepted the record.
	Stored submission.StoredRecord
}

// NewState returns the initial state: first section, empty maps, viewing.
func NewState() State {
	return State{
		Index:   0,
		Answers: answers.Map{},
		Errors:  validation.Errors{},
		Phase:   PhaseViewing,
	}
}

// Submitting reports whether a submission is pending.
func (s State) Submitting() bool {
	return s.Phase == PhaseSubmitting
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Answers = s.Answers.Clone()
	out.Errors = s.Errors.Clone()
	out.Stored.Record.FormData = s.Stored.Record.FormData.Clone()
	return out
}
