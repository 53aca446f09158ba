// Package scan holds the capture-to-solution core: the record model, the
// ordered history store, and the orchestrator that drives a captured image
// to a terminal state.
package scan

import "time"

// Status tracks the lifecycle of a record. A record enters pending when
// the photo is captured and moves to exactly one terminal state.
type Status string

const (
	StatusPending Status = "pending"
	StatusSolved  Status = "solved"
	StatusFailed  Status = "failed"
)

// Terminal reports whether no further automatic transition can happen.
func (s Status) Terminal() bool { return s == StatusSolved || s == StatusFailed }

// Fixed labels used while a record has no usable solution text.
const (
	PendingTitle  = "Processing image"
	FailedTitle   = "Processing failed"
	UntitledTitle = "Untitled problem"
)

// GenericFailure is stored when the engine reports an error without a message.
const GenericFailure = "failed to reach the AI service"

// Record is one capture-and-solve attempt. Image and CreatedAt are set at
// creation and never change; the orchestrator owns every other mutation.
type Record struct {
	ID           string    `json:"id"`
	Image        []byte    `json:"image"`
	CreatedAt    time.Time `json:"createdAt"`
	Title        string    `json:"title"`
	SolutionText string    `json:"solutionText,omitempty"`
	Status       Status    `json:"status"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}
