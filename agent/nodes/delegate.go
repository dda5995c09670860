package orchestratornode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/task"
)

func Delegate(ctx context.Context, in *GraphState, transport contractx.Transport, timeout time.Duration) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if len(in.Specialists) == 0 {
		return in, nil
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("%w: delegation timeout must be positive", contractx.ErrValidation)
	}

	req := contractx.TaskRequest{
		SessionID: in.SessionID,
		Text:      in.Text,
		Context:   in.History,
	}

	// One slot per specialist so the outcome order stays the delegation
	// order regardless of completion order. A failed delegation is an
	// outcome, not a group error: siblings keep running.
	outcomes := make([]Outcome, len(in.Specialists))
	g, gctx := errgroup.WithContext(ctx)
	for i, sp := range in.Specialists {
		g.Go(func() error {
			outcomes[i] = delegateOne(gctx, transport, sp, req, timeout)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	in.Outcomes = outcomes
	return in, nil
}

func delegateOne(ctx context.Context, transport contractx.Transport, sp contractx.SpecialistDescriptor, req contractx.TaskRequest, timeout time.Duration) Outcome {
	out := Outcome{Specialist: sp}

	dctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	handle, err := transport.SendTask(dctx, sp.Endpoint, req)
	if err != nil {
		out.Err = fmt.Errorf("send task to %s: %w", sp.ID, err)
		return out
	}
	out.TaskID = handle.TaskID

	events, err := transport.Subscribe(dctx, handle)
	if err != nil {
		out.Err = fmt.Errorf("subscribe to task %s: %w", handle.TaskID, err)
		return out
	}
	for range events {
	}

	// The subscription ends on a terminal event or on deadline expiry; the
	// snapshot is fetched on the parent context so a timed-out delegation
	// still reports whatever state it reached.
	snap, err := transport.Task(ctx, handle)
	if err != nil {
		out.Err = fmt.Errorf("fetch task %s: %w", handle.TaskID, err)
		return out
	}

	switch {
	case snap.State == task.StateCompleted:
		out.Answer = snap.Result
	case errors.Is(dctx.Err(), context.DeadlineExceeded):
		out.Err = fmt.Errorf("%w: specialist=%s after %s", contractx.ErrDelegationTimeout, sp.ID, timeout)
	case snap.Terminal():
		detail := snap.Error
		if detail == "" {
			detail = string(snap.State)
		}
		out.Err = fmt.Errorf("specialist %s: %s", sp.ID, detail)
	default:
		out.Err = fmt.Errorf("specialist %s ended in state %s", sp.ID, snap.State)
	}

	if out.Err != nil {
		log.Warn().
			Str("specialist", sp.ID).
			Str("task_id", out.TaskID).
			Err(out.Err).
			Msg("delegation failed")
	}
	return out
}
