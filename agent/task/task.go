package task

import (
	"errors"
	"time"
)

// State is the lifecycle state of one delegated task.
type State string

const (
	StateSubmitted     State = "submitted"
	StateWorking       State = "working"
	StateInputRequired State = "input-required"
	StateCompleted     State = "completed"
	StateFailed        State = "failed"
	StateCanceled      State = "canceled"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTransition = errors.New("invalid task transition")
)

// allowedTransitions is the full lifecycle graph. A working task may emit
// working->working progress events; input-required pauses work until the
// caller supplies clarification.
var allowedTransitions = map[State][]State{
	StateSubmitted:     {StateWorking, StateFailed, StateCanceled},
	StateWorking:       {StateWorking, StateInputRequired, StateCompleted, StateFailed, StateCanceled},
	StateInputRequired: {StateWorking, StateFailed, StateCanceled},
	StateCompleted:     {},
	StateFailed:        {},
	StateCanceled:      {},
}

// Valid reports whether s is a known lifecycle state.
func (s State) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Terminal reports whether no further transition is permitted from s.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCanceled
}

func (s State) canTransitionTo(to State) bool {
	for _, next := range allowedTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusEvent is one appended lifecycle record. Append order is the
// authoritative ordering; OccurredAt strictly increases within one task.
type StatusEvent struct {
	State      State     `json:"state"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Snapshot is a value copy of one task record. The tracker owns the live
// record; callers only ever see snapshots.
type Snapshot struct {
	ID           string        `json:"id"`
	SpecialistID string        `json:"specialist_id"`
	SessionID    string        `json:"session_id,omitempty"`
	Input        string        `json:"input"`
	State        State         `json:"state"`
	History      []StatusEvent `json:"history"`
	Result       string        `json:"result,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// Terminal reports whether the snapshot was taken after the task finished.
func (s Snapshot) Terminal() bool {
	return s.State.Terminal()
}
