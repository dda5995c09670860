package orchestratornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	statex "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/state"
)

func SaveSession(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Session == nil {
		return nil, fmt.Errorf("%w: session state is missing", contractx.ErrValidation)
	}

	if err := in.Session.AddUserTurn(in.Text, in.Now); err != nil {
		return nil, err
	}
	if err := in.Session.AddAssistantTurn(in.Reply, in.Now); err != nil {
		return nil, err
	}

	// A dropped save loses conversation continuity, not the reply.
	if err := store.Save(ctx, in.Session); err != nil {
		log.Warn().Str("session_id", in.SessionID).Err(err).Msg("session save failed")
	}
	return in, nil
}
