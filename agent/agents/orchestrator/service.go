// Package orchestrator coordinates one customer message end to end: it
// classifies the message into intents, resolves the responsible specialists,
// delegates to all of them concurrently over the task transport and folds
// their answers into a single reply.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	nodex "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/nodes"
	promptx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/prompt"
	statex "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/state"
)

var ErrInvalidMessage = nodex.ErrInvalidMessage

const defaultDelegationTimeout = 30 * time.Second

type Config struct {
	// DelegationTimeout bounds each specialist delegation. A specialist
	// that misses it is reported as failed; the others keep running.
	DelegationTimeout time.Duration
}

// Reply is the orchestrator's answer to one message. SessionID echoes the
// caller's session, or the one generated when the caller sent none.
type Reply struct {
	SessionID string
	Text      string
}

type Orchestrator struct {
	store     statex.Store
	directory contractx.Directory
	transport contractx.Transport
	answerer  contractx.Answerer

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	directPrompt string
	timeout      time.Duration

	now func() time.Time
}

// New wires the orchestrator. The answerer may be nil; direct answers then
// degrade to a static fallback reply instead of a model completion.
func New(
	store statex.Store,
	directory contractx.Directory,
	transport contractx.Transport,
	answerer contractx.Answerer,
	cfg Config,
) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if directory == nil {
		return nil, errors.New("specialist directory is required")
	}
	if transport == nil {
		return nil, errors.New("task transport is required")
	}

	timeout := cfg.DelegationTimeout
	if timeout <= 0 {
		timeout = defaultDelegationTimeout
	}

	directPrompt, err := promptx.LoadPromptSet().For(contractx.AgentTypeOrchestrator)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		store:        store,
		directory:    directory,
		transport:    transport,
		answerer:     answerer,
		directPrompt: directPrompt,
		timeout:      timeout,
		now:          time.Now,
	}

	graphRunner, err := o.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID string, text string) (Reply, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		return Reply{}, err
	}
	return Reply{SessionID: out.SessionID, Text: out.Reply}, nil
}
