// Package controller implements the questionnaire state machine: the current
// step, the answer map, the per-section error map and the submission guard.
//
// The machine is split in two layers. Reducer.Reduce is a pure transition
// function from (State, Event) to (State, []Effect) that never touches I/O,
// so every rule can be exercised without a renderer. Controller owns one
// State behind a mutex, feeds it events from the UI layer, and executes the
// effects the reducer asks for (persisting through a submission.Gateway,
// notifying through a notify.Notifier, scrolling, and calling back the host
// view once a record is stored).
//
// Only forward movement is gated by validation: Advance and Submit run the
// section validator, while Retreat and Jump move unconditionally. While a
// submission is pending every navigation and edit is rejected.
package controller
