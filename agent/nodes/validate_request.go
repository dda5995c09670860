// Package orchestratornode holds the pipeline steps the orchestrator graph
// is composed of: request validation, session loading, intent classification,
// specialist resolution, concurrent delegation, reply synthesis and session
// persistence. Each node is a plain function over *GraphState so the graph
// wiring stays in the orchestrator package.
package orchestratornode

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	statex "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/state"
)

var ErrInvalidMessage = errors.New("message is empty")

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	SessionID string
	Reply     string
}

// Outcome is the result of one delegated task: either the specialist's
// answer or the error that kept it from producing one.
type Outcome struct {
	Specialist contractx.SpecialistDescriptor
	TaskID     string
	Answer     string
	Err        error
}

type GraphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session     *statex.SessionState
	History     string
	Intents     []string
	Specialists []contractx.SpecialistDescriptor
	Outcomes    []Outcome

	Reply string
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		sessionID = "session-" + uuid.NewString()
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}
