package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
)

var (
	//go:embed template/orchestrator.txt
	orchestratorRaw string

	//go:embed template/product.txt
	productRaw string

	//go:embed template/order.txt
	orderRaw string

	//go:embed template/search.txt
	searchRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Orchestrator string
	Product      string
	Order        string
	Search       string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// This is safe to call concurrently; the embed is compile-time, and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Orchestrator: strings.TrimSpace(orchestratorRaw),
		Product:      strings.TrimSpace(productRaw),
		Order:        strings.TrimSpace(orderRaw),
		Search:       strings.TrimSpace(searchRaw),
	}
}

// For returns the system prompt for one agent type.
func (p PromptSet) For(agentType contractx.AgentType) (string, error) {
	var raw string
	switch agentType {
	case contractx.AgentTypeOrchestrator:
		raw = p.Orchestrator
	case contractx.AgentTypeProduct:
		raw = p.Product
	case contractx.AgentTypeOrder:
		raw = p.Order
	case contractx.AgentTypeSearch:
		raw = p.Search
	}
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: agent=%s", contractx.ErrPromptMissing, agentType)
	}
	return raw, nil
}
