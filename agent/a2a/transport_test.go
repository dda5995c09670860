package a2a

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/task"
)

// scriptedSpecialist lets each test decide how the specialist behaves.
type scriptedSpecialist struct {
	id  string
	run func(ctx context.Context, req contractx.TaskRequest, up *task.Updater) error
}

func (s *scriptedSpecialist) ID() string { return s.id }

func (s *scriptedSpecialist) Execute(ctx context.Context, req contractx.TaskRequest, up *task.Updater) error {
	return s.run(ctx, req, up)
}

func drainEvents(t *testing.T, ch <-chan task.StatusEvent) []task.StatusEvent {
	t.Helper()

	var events []task.StatusEvent
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatalf("timed out draining events, got %d so far", len(events))
		}
	}
}

func newInProc(t *testing.T) *InProc {
	t.Helper()
	return NewInProc(task.NewTracker())
}

func TestInProcRegisterValidation(t *testing.T) {
	t.Parallel()

	p := newInProc(t)
	sp := &scriptedSpecialist{id: "product-agent"}

	if err := p.Register("", sp); err == nil {
		t.Fatal("Register with empty endpoint expected error")
	}
	if err := p.Register("product-agent", nil); err == nil {
		t.Fatal("Register with nil specialist expected error")
	}
	if err := p.Register("product-agent", sp); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := p.Register("product-agent", sp); err == nil {
		t.Fatal("Register with duplicate endpoint expected error")
	}
}

func TestInProcSendTaskUnknownEndpoint(t *testing.T) {
	t.Parallel()

	p := newInProc(t)
	_, err := p.SendTask(context.Background(), "ghost-agent", contractx.TaskRequest{Text: "hi"})
	if !errors.Is(err, contractx.ErrUnknownSpecialist) {
		t.Fatalf("SendTask() error = %v, want ErrUnknownSpecialist", err)
	}
}

func TestInProcDelegationCompletes(t *testing.T) {
	t.Parallel()

	p := newInProc(t)
	sp := &scriptedSpecialist{
		id: "product-agent",
		run: func(_ context.Context, req contractx.TaskRequest, up *task.Updater) error {
			if err := up.StartWork(); err != nil {
				return err
			}
			return up.Complete("echo: " + req.Text)
		},
	}
	if err := p.Register("product-agent", sp); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	ctx := context.Background()
	handle, err := p.SendTask(ctx, "product-agent", contractx.TaskRequest{SessionID: "s-1", Text: "kulaklık"})
	if err != nil {
		t.Fatalf("SendTask() error = %v", err)
	}
	if handle.Endpoint != "product-agent" || handle.TaskID == "" {
		t.Fatalf("SendTask() handle = %+v", handle)
	}

	ch, err := p.Subscribe(ctx, handle)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	events := drainEvents(t, ch)
	if len(events) < 3 {
		t.Fatalf("got %d events, want at least submitted/working/completed", len(events))
	}
	if last := events[len(events)-1]; last.State != task.StateCompleted {
		t.Fatalf("last event state = %s, want completed", last.State)
	}

	snap, err := p.Task(ctx, handle)
	if err != nil {
		t.Fatalf("Task() error = %v", err)
	}
	if snap.Result != "echo: kulaklık" {
		t.Fatalf("snapshot result = %q", snap.Result)
	}
	if snap.SessionID != "s-1" {
		t.Fatalf("snapshot session = %q, want s-1", snap.SessionID)
	}
}

func TestInProcSpecialistErrorFailsTask(t *testing.T) {
	t.Parallel()

	p := newInProc(t)
	sp := &scriptedSpecialist{
		id: "order-agent",
		run: func(_ context.Context, _ contractx.TaskRequest, up *task.Updater) error {
			_ = up.StartWork()
			return errors.New("upstream exploded")
		},
	}
	if err := p.Register("order-agent", sp); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	ctx := context.Background()
	handle, err := p.SendTask(ctx, "order-agent", contractx.TaskRequest{Text: "ord-001"})
	if err != nil {
		t.Fatalf("SendTask() error = %v", err)
	}

	ch, err := p.Subscribe(ctx, handle)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	events := drainEvents(t, ch)
	last := events[len(events)-1]
	if last.State != task.StateFailed {
		t.Fatalf("last event state = %s, want failed", last.State)
	}
	if !strings.Contains(last.Detail, "upstream exploded") {
		t.Fatalf("failure detail = %q, want the specialist error", last.Detail)
	}
}

func TestInProcSpecialistWithoutResultFails(t *testing.T) {
	t.Parallel()

	p := newInProc(t)
	sp := &scriptedSpecialist{
		id: "order-agent",
		run: func(_ context.Context, _ contractx.TaskRequest, up *task.Updater) error {
			return up.StartWork() // never completes
		},
	}
	if err := p.Register("order-agent", sp); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	ctx := context.Background()
	handle, err := p.SendTask(ctx, "order-agent", contractx.TaskRequest{Text: "x"})
	if err != nil {
		t.Fatalf("SendTask() error = %v", err)
	}

	ch, err := p.Subscribe(ctx, handle)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	events := drainEvents(t, ch)
	last := events[len(events)-1]
	if last.State != task.StateFailed {
		t.Fatalf("last event state = %s, want failed", last.State)
	}
}

func TestInProcSpecialistPanicFailsTask(t *testing.T) {
	t.Parallel()

	p := newInProc(t)
	sp := &scriptedSpecialist{
		id: "search-agent",
		run: func(_ context.Context, _ contractx.TaskRequest, _ *task.Updater) error {
			panic("boom")
		},
	}
	if err := p.Register("search-agent", sp); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	ctx := context.Background()
	handle, err := p.SendTask(ctx, "search-agent", contractx.TaskRequest{Text: "x"})
	if err != nil {
		t.Fatalf("SendTask() error = %v", err)
	}

	ch, err := p.Subscribe(ctx, handle)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	events := drainEvents(t, ch)
	last := events[len(events)-1]
	if last.State != task.StateFailed {
		t.Fatalf("last event state = %s, want failed", last.State)
	}
	if !strings.Contains(last.Detail, "panicked") {
		t.Fatalf("failure detail = %q, want panic notice", last.Detail)
	}
}

func TestInProcCanceledContextFailsTask(t *testing.T) {
	t.Parallel()

	p := newInProc(t)
	sp := &scriptedSpecialist{
		id: "product-agent",
		run: func(ctx context.Context, _ contractx.TaskRequest, up *task.Updater) error {
			_ = up.StartWork()
			<-ctx.Done()
			return ctx.Err()
		},
	}
	if err := p.Register("product-agent", sp); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	sendCtx, cancel := context.WithCancel(context.Background())
	handle, err := p.SendTask(sendCtx, "product-agent", contractx.TaskRequest{Text: "x"})
	if err != nil {
		t.Fatalf("SendTask() error = %v", err)
	}
	cancel()

	ch, err := p.Subscribe(context.Background(), handle)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	events := drainEvents(t, ch)
	last := events[len(events)-1]
	if last.State != task.StateFailed {
		t.Fatalf("last event state = %s, want failed after cancellation", last.State)
	}
}
