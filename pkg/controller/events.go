package controller

import (
	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/notify"
	"github.com/goliatone/go-pmsform/pkg/submission"
)

// Event is an input to the state machine.
type Event interface {
	event()
}

// FieldChanged records a new value for one question.
type FieldChanged struct {
	QuestionID string
	Value      answers.Value
}

// Advanced requests the next section ("Next").
type Advanced struct{}

// Retreated requests the previous section ("Previous").
type Retreated struct{}

// Jumped requests a specific section from the step indicator.
type Jumped struct {
	Index int
}

// SubmitRequested requests final submission from the last section.
type SubmitRequested struct{}

// SubmitSucceeded reports that the gateway stored the record.
type SubmitSucceeded struct {
	Stored submission.StoredRecord
}

// SubmitFailed reports a gateway failure.
type SubmitFailed struct {
	Err error
}

// ResetRequested starts a new response after a successful submission.
type ResetRequested struct{}

func (FieldChanged) event()    {}
func (Advanced) event()        {}
func (Retreated) event()       {}
func (Jumped) event()          {}
func (SubmitRequested) event() {}
func (SubmitSucceeded) event() {}
func (SubmitFailed) event()    {}
func (ResetRequested) event()  {}

// Effect is a side effect requested by a transition.
type Effect interface {
	effect()
}

// ScrollTop asks the view to scroll back to the top of the form.
type ScrollTop struct{}

// Persist asks for record to be handed to the submission gateway.
type Persist struct {
	Record submission.Record
}

// Notify asks for a notification to be delivered.
type Notify struct {
	Notification notify.Notification
}

// Submitted tells the host view the form is complete.
type Submitted struct {
	Answers answers.Map
	Stored  submission.StoredRecord
}

func (ScrollTop) effect() {}
func (Persist) effect()   {}
func (Notify) effect()    {}
func (Submitted) effect() {}

// Notifications emitted on submission outcomes.
var (
	SuccessNotification = notify.Notification{
		Title:       "Form submitted successfully!",
		Description: "Thank you for your submission. We will review your requirements and get back to you soon.",
		Severity:    notify.SeveritySuccess,
	}
	FailureNotification = notify.Notification{
		Title:       "Submission failed",
		Description: "There was an error submitting your form. Please try again.",
		Severity:    notify.SeverityError,
	}
)
