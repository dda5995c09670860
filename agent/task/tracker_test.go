package task

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func collectAll(t *testing.T, ch <-chan StatusEvent) []StatusEvent {
	t.Helper()
	var events []StatusEvent
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for events, got %d so far", len(events))
		}
	}
}

func TestTrackerCreate(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	snap := tr.Create("product-agent", "sess-1", "find headphones")

	if !strings.HasPrefix(snap.ID, "task-") {
		t.Fatalf("expected task- prefixed id, got %q", snap.ID)
	}
	if snap.State != StateSubmitted {
		t.Fatalf("expected submitted, got %s", snap.State)
	}
	if len(snap.History) != 1 || snap.History[0].State != StateSubmitted {
		t.Fatalf("expected single submitted event, got %+v", snap.History)
	}
	if snap.SpecialistID != "product-agent" || snap.SessionID != "sess-1" || snap.Input != "find headphones" {
		t.Fatalf("unexpected snapshot fields: %+v", snap)
	}
}

func TestTrackerGetUnknown(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	if _, err := tr.Get("task-missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if _, err := tr.Subscribe(context.Background(), "task-missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound from Subscribe, got %v", err)
	}
}

func TestTrackerLifecycle(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	snap := tr.Create("order-agent", "", "where is ord-001")

	if err := tr.Transition(snap.ID, StateWorking, "work started"); err != nil {
		t.Fatalf("start work: %v", err)
	}
	if err := tr.Transition(snap.ID, StateWorking, "calling get_order_status"); err != nil {
		t.Fatalf("progress: %v", err)
	}
	if err := tr.Complete(snap.ID, "ord-001 shipped via TK123456789TR"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got, err := tr.Get(snap.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != StateCompleted {
		t.Fatalf("expected completed, got %s", got.State)
	}
	if got.Result != "ord-001 shipped via TK123456789TR" {
		t.Fatalf("unexpected result: %q", got.Result)
	}
	wantStates := []State{StateSubmitted, StateWorking, StateWorking, StateCompleted}
	if len(got.History) != len(wantStates) {
		t.Fatalf("expected %d events, got %d", len(wantStates), len(got.History))
	}
	for i, ev := range got.History {
		if ev.State != wantStates[i] {
			t.Fatalf("event %d: expected %s, got %s", i, wantStates[i], ev.State)
		}
	}
}

func TestTrackerRejectsAppendAfterTerminal(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	snap := tr.Create("order-agent", "", "cancel ord-004")
	if err := tr.Transition(snap.ID, StateWorking, ""); err != nil {
		t.Fatalf("start work: %v", err)
	}
	if err := tr.Fail(snap.ID, "gateway unreachable"); err != nil {
		t.Fatalf("fail: %v", err)
	}

	if err := tr.Transition(snap.ID, StateWorking, "retry"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition after failed, got %v", err)
	}
	if err := tr.Complete(snap.ID, "done"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on terminal->terminal, got %v", err)
	}

	got, _ := tr.Get(snap.ID)
	if got.State != StateFailed {
		t.Fatalf("terminal state changed after rejected appends: %s", got.State)
	}
	var terminals int
	for _, ev := range got.History {
		if ev.State.Terminal() {
			terminals++
		}
	}
	if terminals != 1 {
		t.Fatalf("expected exactly one terminal event, got %d", terminals)
	}
}

func TestTrackerRejectsInvalidEdge(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	snap := tr.Create("product-agent", "", "anything")

	// submitted cannot jump straight to completed or input-required.
	if err := tr.Complete(snap.ID, "done"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for submitted->completed, got %v", err)
	}
	if err := tr.Transition(snap.ID, StateInputRequired, "which order?"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for submitted->input-required, got %v", err)
	}
	if err := tr.Transition(snap.ID, State("paused"), ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for unknown state, got %v", err)
	}
}

func TestTrackerTimestampsStrictlyIncrease(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	// Freeze the clock so every raw timestamp collides.
	fixed := time.Date(2025, 2, 14, 10, 30, 0, 0, time.UTC)
	tr.now = func() time.Time { return fixed }

	snap := tr.Create("product-agent", "", "find laptops")
	if err := tr.Transition(snap.ID, StateWorking, ""); err != nil {
		t.Fatalf("start work: %v", err)
	}
	if err := tr.Transition(snap.ID, StateWorking, "searching"); err != nil {
		t.Fatalf("progress: %v", err)
	}
	if err := tr.Complete(snap.ID, "two matches"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got, _ := tr.Get(snap.ID)
	for i := 1; i < len(got.History); i++ {
		prev, cur := got.History[i-1].OccurredAt, got.History[i].OccurredAt
		if !cur.After(prev) {
			t.Fatalf("event %d timestamp %v not after %v", i, cur, prev)
		}
	}
}

func TestTrackerSnapshotIsolation(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	snap := tr.Create("product-agent", "", "find books")
	before, _ := tr.Get(snap.ID)

	if err := tr.Transition(snap.ID, StateWorking, ""); err != nil {
		t.Fatalf("start work: %v", err)
	}

	if before.State != StateSubmitted || len(before.History) != 1 {
		t.Fatalf("earlier snapshot mutated by later transition: %+v", before)
	}

	// Mutating a returned history must not leak into the record.
	after, _ := tr.Get(snap.ID)
	after.History[0].Detail = "tampered"
	fresh, _ := tr.Get(snap.ID)
	if fresh.History[0].Detail == "tampered" {
		t.Fatal("snapshot history shares backing array with the record")
	}
}

func TestTrackerSubscribeLive(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	snap := tr.Create("order-agent", "", "track ord-001")

	ch, err := tr.Subscribe(context.Background(), snap.ID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	go func() {
		_ = tr.Transition(snap.ID, StateWorking, "work started")
		_ = tr.Transition(snap.ID, StateWorking, "fetching tracking events")
		_ = tr.Complete(snap.ID, "out for delivery")
	}()

	events := collectAll(t, ch)
	wantStates := []State{StateSubmitted, StateWorking, StateWorking, StateCompleted}
	if len(events) != len(wantStates) {
		t.Fatalf("expected %d events, got %d: %+v", len(wantStates), len(events), events)
	}
	for i, ev := range events {
		if ev.State != wantStates[i] {
			t.Fatalf("event %d: expected %s, got %s", i, wantStates[i], ev.State)
		}
	}
}

func TestTrackerSubscribeAfterTerminalReplaysHistory(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	snap := tr.Create("order-agent", "", "cancel ord-003")
	_ = tr.Transition(snap.ID, StateWorking, "")
	_ = tr.Transition(snap.ID, StateWorking, "checking order status")
	_ = tr.Fail(snap.ID, "order already shipped")

	ch, err := tr.Subscribe(context.Background(), snap.ID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	events := collectAll(t, ch)

	wantStates := []State{StateSubmitted, StateWorking, StateWorking, StateFailed}
	if len(events) != len(wantStates) {
		t.Fatalf("late subscriber expected %d events, got %d", len(wantStates), len(events))
	}
	for i, ev := range events {
		if ev.State != wantStates[i] {
			t.Fatalf("event %d: expected %s, got %s", i, wantStates[i], ev.State)
		}
	}
}

func TestTrackerSubscribeConcurrent(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	snap := tr.Create("product-agent", "", "recommend a gift")

	const subscribers = 4
	var wg sync.WaitGroup
	counts := make([]int, subscribers)
	for i := 0; i < subscribers; i++ {
		ch, err := tr.Subscribe(context.Background(), snap.ID)
		if err != nil {
			t.Fatalf("subscribe %d: %v", i, err)
		}
		wg.Add(1)
		go func(i int, ch <-chan StatusEvent) {
			defer wg.Done()
			for range ch {
				counts[i]++
			}
		}(i, ch)
	}

	_ = tr.Transition(snap.ID, StateWorking, "")
	_ = tr.Transition(snap.ID, StateWorking, "calling get_recommendations")
	_ = tr.Complete(snap.ID, "four picks")
	wg.Wait()

	for i, n := range counts {
		if n != 4 {
			t.Fatalf("subscriber %d saw %d events, expected 4", i, n)
		}
	}
}

func TestTrackerSubscribeContextCancel(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	snap := tr.Create("product-agent", "", "slow request")
	_ = tr.Transition(snap.ID, StateWorking, "")

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := tr.Subscribe(ctx, snap.ID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	// Drain the replayed prefix, then cancel while the task is still open.
	for i := 0; i < 2; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out draining replay")
		}
	}
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected channel to close after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after context cancel")
	}
}

func TestUpdaterLifecycle(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	snap := tr.Create("order-agent", "sess-9", "update my address")

	up, err := tr.Updater(snap.ID)
	if err != nil {
		t.Fatalf("updater: %v", err)
	}
	if up.TaskID() != snap.ID {
		t.Fatalf("updater bound to %q, expected %q", up.TaskID(), snap.ID)
	}

	if err := up.StartWork(); err != nil {
		t.Fatalf("start work: %v", err)
	}
	if err := up.RequireInput("which address line?"); err != nil {
		t.Fatalf("require input: %v", err)
	}
	if err := up.Resume("got clarification"); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if err := up.Complete("address updated"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got, _ := tr.Get(snap.ID)
	wantStates := []State{StateSubmitted, StateWorking, StateInputRequired, StateWorking, StateCompleted}
	if len(got.History) != len(wantStates) {
		t.Fatalf("expected %d events, got %d", len(wantStates), len(got.History))
	}
	for i, ev := range got.History {
		if ev.State != wantStates[i] {
			t.Fatalf("event %d: expected %s, got %s", i, wantStates[i], ev.State)
		}
	}

	if _, err := tr.Updater("task-nope"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestUpdaterCancel(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	snap := tr.Create("search-agent", "", "compare phones")
	up, _ := tr.Updater(snap.ID)

	if err := up.StartWork(); err != nil {
		t.Fatalf("start work: %v", err)
	}
	if err := up.Cancel("delegation timed out"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	got, _ := tr.Get(snap.ID)
	if got.State != StateCanceled {
		t.Fatalf("expected canceled, got %s", got.State)
	}
	if got.Error != "delegation timed out" {
		t.Fatalf("unexpected error text: %q", got.Error)
	}
	if err := up.Progress("still going"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition after cancel, got %v", err)
	}
}
