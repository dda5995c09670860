package a2a

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/task"
)

var _ contractx.Transport = (*InProc)(nil)

// InProc delivers tasks to specialists living in the same process. Endpoints
// are the logical names from the registry; SendTask creates the task record
// and runs the specialist on its own goroutine, bounded by the caller's
// context.
type InProc struct {
	tracker *task.Tracker

	mu          sync.RWMutex
	specialists map[string]contractx.Specialist
}

func NewInProc(tracker *task.Tracker) *InProc {
	return &InProc{
		tracker:     tracker,
		specialists: make(map[string]contractx.Specialist),
	}
}

func (p *InProc) Register(endpoint string, sp contractx.Specialist) error {
	if endpoint == "" {
		return errors.New("a2a: endpoint is required")
	}
	if sp == nil {
		return fmt.Errorf("a2a: specialist for endpoint %s is nil", endpoint)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.specialists[endpoint]; exists {
		return fmt.Errorf("a2a: endpoint %s already registered", endpoint)
	}
	p.specialists[endpoint] = sp
	return nil
}

func (p *InProc) SendTask(ctx context.Context, endpoint string, req contractx.TaskRequest) (contractx.TaskHandle, error) {
	p.mu.RLock()
	sp, ok := p.specialists[endpoint]
	p.mu.RUnlock()
	if !ok {
		return contractx.TaskHandle{}, fmt.Errorf("%w: endpoint=%s", contractx.ErrUnknownSpecialist, endpoint)
	}

	snap := p.tracker.Create(sp.ID(), req.SessionID, req.Text)
	up, err := p.tracker.Updater(snap.ID)
	if err != nil {
		return contractx.TaskHandle{}, err
	}

	go p.run(ctx, sp, req, up)

	return contractx.TaskHandle{TaskID: snap.ID, Endpoint: endpoint}, nil
}

// run executes the specialist and guarantees the task ends up terminal even
// when the specialist misbehaves. A panicking specialist fails its own task,
// not the process or its sibling delegations.
func (p *InProc) run(ctx context.Context, sp contractx.Specialist, req contractx.TaskRequest, up *task.Updater) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("specialist", sp.ID()).Interface("panic", r).Msg("specialist panicked")
			_ = up.Fail(fmt.Sprintf("specialist panicked: %v", r))
		}
	}()

	if err := sp.Execute(ctx, req, up); err != nil {
		_ = up.Fail(err.Error())
		return
	}

	if snap, err := p.tracker.Get(up.TaskID()); err == nil && !snap.Terminal() {
		_ = up.Fail("specialist finished without a result")
	}
}

func (p *InProc) Subscribe(ctx context.Context, h contractx.TaskHandle) (<-chan task.StatusEvent, error) {
	return p.tracker.Subscribe(ctx, h.TaskID)
}

func (p *InProc) Task(_ context.Context, h contractx.TaskHandle) (task.Snapshot, error) {
	return p.tracker.Get(h.TaskID)
}
