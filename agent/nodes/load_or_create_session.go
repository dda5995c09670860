package orchestratornode

import (
	"context"
	"errors"
	"fmt"
	"time"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	statex "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/state"
)

func LoadOrCreateSession(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	st, err := loadOrCreateSession(ctx, store, in.SessionID, in.Now)
	if err != nil {
		return nil, err
	}
	in.Session = st
	in.History = st.Render()
	return in, nil
}

func loadOrCreateSession(ctx context.Context, store statex.Store, sessionID string, now time.Time) (*statex.SessionState, error) {
	st, err := store.Load(ctx, sessionID)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, statex.ErrStateNotFound) {
		return nil, err
	}

	return statex.NewSessionState(sessionID, now), nil
}
