package orchestrator

import (
	"context"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	openrouterx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/pkg/openrouter"
)

// DirectAnswerer serves the messages no specialist claims: a plain chat
// completion against OpenRouter with no tool loop attached.
type DirectAnswerer struct {
	client      *openaisdk.Client
	model       string
	maxTokens   int64
	temperature float64
}

var _ contractx.Answerer = (*DirectAnswerer)(nil)

func NewDirectAnswerer(cfg openrouterx.Config) (*DirectAnswerer, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("%w: model is required", contractx.ErrValidation)
	}

	client := openrouterx.NewClient(cfg)
	if client == nil {
		return nil, fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}

	a := &DirectAnswerer{
		client:      client,
		model:       cfg.Model,
		temperature: float64(cfg.Temperature),
	}
	if cfg.MaxCompletionToken != nil {
		a.maxTokens = int64(*cfg.MaxCompletionToken)
	}
	return a, nil
}

func (a *DirectAnswerer) Answer(ctx context.Context, system, input string) (string, error) {
	params := openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(a.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(system),
			openaisdk.UserMessage(input),
		},
	}
	if a.maxTokens > 0 {
		params.MaxTokens = openaisdk.Int(a.maxTokens)
	}
	if a.temperature >= 0 {
		params.Temperature = openaisdk.Float(a.temperature)
	}

	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: direct answer: %v", contractx.ErrModelInvoke, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion returned no choices", contractx.ErrSchemaViolation)
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("%w: completion returned empty content", contractx.ErrSchemaViolation)
	}
	return answer, nil
}
