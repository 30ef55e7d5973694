package models

import "errors"

// ErrIllegalTransition is returned when a transfer is asked to move to a status
// that cannot follow its current one.
var ErrIllegalTransition = errors.New("illegal status transition")

// Status is the position of a transfer in the clearing lifecycle.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusValidating Status = "VALIDATING"
	StatusProcessing Status = "PROCESSING"
	StatusSettling   Status = "SETTLING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// transitions lists, for each status, the statuses that may follow it.
// FAILED is only reachable from VALIDATING.
var transitions = map[Status][]Status{
	StatusPending:    {StatusValidating},
	StatusValidating: {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusSettling},
	StatusSettling:   {StatusCompleted},
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether a transfer in status s may record a step in status next.
// Recording another step in the same status is not a transition and is allowed
// for non-terminal statuses, and for COMPLETED so the confirmation can follow the credit.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return s != StatusFailed
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
