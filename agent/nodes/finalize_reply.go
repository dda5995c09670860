package orchestratornode

import (
	"fmt"
	"strings"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply := strings.TrimSpace(in.Reply)
	if reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: empty reply after synthesis", contractx.ErrValidation)
	}
	return GraphOutput{SessionID: in.SessionID, Reply: reply}, nil
}
