package specialist

import (
	"context"
	"fmt"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	llmx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/llm"
	promptx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/prompt"
	toolx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/tool"
)

// NewRuntimes builds one runtime per descriptor: prompt by agent type, model
// by agent type, tool definitions from the descriptor's toolset.
func NewRuntimes(
	ctx context.Context,
	cfg llmx.Config,
	specialists []contractx.SpecialistDescriptor,
	gateway contractx.ToolGateway,
) ([]*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if gateway == nil {
		return nil, fmt.Errorf("%w: tool gateway is nil", contractx.ErrValidation)
	}

	prompts := promptx.LoadPromptSet()

	runtimes := make([]*Runtime, 0, len(specialists))
	for _, desc := range specialists {
		systemPrompt, err := prompts.For(desc.Type)
		if err != nil {
			return nil, err
		}

		modelCfg := cfg.OpenRouterFor(desc.Type)
		chatModel, err := modelCfg.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: create model for specialist=%s: %v", contractx.ErrModelInvoke, desc.ID, err)
		}

		infos := toolx.Infos(desc.Tools...)
		reasoner, err := NewEinoReasoner(ctx, chatModel, infos)
		if err != nil {
			return nil, fmt.Errorf("build reasoner for specialist=%s: %w", desc.ID, err)
		}

		rt, err := NewRuntime(desc, systemPrompt, reasoner, gateway)
		if err != nil {
			return nil, err
		}
		runtimes = append(runtimes, rt)
	}
	return runtimes, nil
}
