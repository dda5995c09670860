package task

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Tracker is the arena of task records. It is the single owner of task
// state: every mutation goes through a validated transition, every reader
// gets a snapshot, and subscribers get the full ordered event history no
// matter when they attach.
type Tracker struct {
	mu    sync.RWMutex
	tasks map[string]*record

	now func() time.Time
}

type record struct {
	mu   sync.Mutex
	cond *sync.Cond

	id           string
	specialistID string
	sessionID    string
	input        string
	state        State
	history      []StatusEvent
	result       string
	errMsg       string
}

func NewTracker() *Tracker {
	return &Tracker{
		tasks: make(map[string]*record),
		now:   time.Now,
	}
}

// Create registers a new task in the submitted state and returns its snapshot.
func (t *Tracker) Create(specialistID, sessionID, input string) Snapshot {
	rec := &record{
		id:           "task-" + uuid.NewString(),
		specialistID: specialistID,
		sessionID:    sessionID,
		input:        input,
		state:        StateSubmitted,
	}
	rec.cond = sync.NewCond(&rec.mu)
	rec.history = append(rec.history, StatusEvent{
		State:      StateSubmitted,
		Detail:     "task accepted",
		OccurredAt: t.now().UTC(),
	})
	snap := rec.snapshotLocked()

	t.mu.Lock()
	t.tasks[rec.id] = rec
	t.mu.Unlock()

	return snap
}

// Get returns a snapshot of the task or ErrTaskNotFound.
func (t *Tracker) Get(taskID string) (Snapshot, error) {
	rec, err := t.record(taskID)
	if err != nil {
		return Snapshot{}, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.snapshotLocked(), nil
}

// Transition appends a StatusEvent moving the task to the given state.
// Appending after a terminal state, or along an edge the state machine
// does not allow, fails with ErrInvalidTransition.
func (t *Tracker) Transition(taskID string, to State, detail string) error {
	return t.append(taskID, to, detail, "", "")
}

// Complete moves the task to completed and records its result text.
func (t *Tracker) Complete(taskID, result string) error {
	return t.append(taskID, StateCompleted, "task completed", result, "")
}

// Fail moves the task to failed and records the failure reason.
func (t *Tracker) Fail(taskID, reason string) error {
	return t.append(taskID, StateFailed, reason, "", reason)
}

// Cancel moves the task to canceled and records the cancellation reason.
func (t *Tracker) Cancel(taskID, reason string) error {
	return t.append(taskID, StateCanceled, reason, "", reason)
}

// Updater returns a helper bound to one task, or ErrTaskNotFound.
func (t *Tracker) Updater(taskID string) (*Updater, error) {
	if _, err := t.record(taskID); err != nil {
		return nil, err
	}
	return &Updater{tracker: t, taskID: taskID}, nil
}

// Subscribe returns a channel that first replays every StatusEvent already
// recorded for the task, in append order, then streams new events as they
// occur, and closes once the terminal event has been delivered. Subscribing
// to an already-terminal task replays the full history and closes
// immediately. Canceling ctx detaches the subscriber.
func (t *Tracker) Subscribe(ctx context.Context, taskID string) (<-chan StatusEvent, error) {
	rec, err := t.record(taskID)
	if err != nil {
		return nil, err
	}

	ch := make(chan StatusEvent)
	go func() {
		defer close(ch)

		// Wake the cond loop when the subscriber's context ends.
		stop := context.AfterFunc(ctx, func() {
			rec.mu.Lock()
			rec.cond.Broadcast()
			rec.mu.Unlock()
		})
		defer stop()

		next := 0
		for {
			rec.mu.Lock()
			for next >= len(rec.history) && !rec.state.Terminal() && ctx.Err() == nil {
				rec.cond.Wait()
			}
			batch := append([]StatusEvent(nil), rec.history[next:]...)
			next += len(batch)
			terminal := rec.state.Terminal()
			rec.mu.Unlock()

			for _, ev := range batch {
				select {
				case ch <- ev:
				case <-ctx.Done():
					return
				}
			}
			if terminal || ctx.Err() != nil {
				return
			}
		}
	}()
	return ch, nil
}

func (t *Tracker) record(taskID string) (*record, error) {
	t.mu.RLock()
	rec, ok := t.tasks[taskID]
	t.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", ErrTaskNotFound, taskID)
	}
	return rec, nil
}

func (t *Tracker) append(taskID string, to State, detail, result, errMsg string) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidTransition, to)
	}
	rec, err := t.record(taskID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.state.Terminal() {
		return fmt.Errorf("%w: task %s is already %s", ErrInvalidTransition, taskID, rec.state)
	}
	if !rec.state.canTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rec.state, to)
	}

	ts := t.now().UTC()
	if last := rec.history[len(rec.history)-1].OccurredAt; !ts.After(last) {
		ts = last.Add(time.Nanosecond)
	}

	rec.state = to
	rec.history = append(rec.history, StatusEvent{
		State:      to,
		Detail:     strings.TrimSpace(detail),
		OccurredAt: ts,
	})
	if result != "" {
		rec.result = result
	}
	if errMsg != "" {
		rec.errMsg = errMsg
	}
	rec.cond.Broadcast()
	return nil
}

func (r *record) snapshotLocked() Snapshot {
	return Snapshot{
		ID:           r.id,
		SpecialistID: r.specialistID,
		SessionID:    r.sessionID,
		Input:        r.input,
		State:        r.state,
		History:      append([]StatusEvent(nil), r.history...),
		Result:       r.result,
		Error:        r.errMsg,
	}
}
