// Package llm maps agent types to concrete model configurations. Every
// specialist shares the default model unless a per-agent override is set.
package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	openrouterx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/pkg/openrouter"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	OrchestratorModel       string  `envconfig:"ORCHESTRATOR_MODEL" split_words:"true"`
	ProductModel            string  `envconfig:"PRODUCT_MODEL" split_words:"true"`
	OrderModel              string  `envconfig:"ORDER_MODEL" split_words:"true"`
	SearchModel             string  `envconfig:"SEARCH_MODEL" split_words:"true"`
	OrchestratorTemperature float32 `envconfig:"ORCHESTRATOR_TEMPERATURE" split_words:"true" default:"-1"`
	ProductTemperature      float32 `envconfig:"PRODUCT_TEMPERATURE" split_words:"true" default:"-1"`
	OrderTemperature        float32 `envconfig:"ORDER_TEMPERATURE" split_words:"true" default:"-1"`
	SearchTemperature       float32 `envconfig:"SEARCH_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor resolves the model configuration for one agent type,
// applying per-agent overrides on top of the shared defaults. A negative
// temperature override means "use the default".
func (c Config) OpenRouterFor(agentType contractx.AgentType) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch agentType {
	case contractx.AgentTypeOrchestrator:
		if v := strings.TrimSpace(c.OrchestratorModel); v != "" {
			modelName = v
		}
		if c.OrchestratorTemperature >= 0 {
			temp = c.OrchestratorTemperature
		}
	case contractx.AgentTypeProduct:
		if v := strings.TrimSpace(c.ProductModel); v != "" {
			modelName = v
		}
		if c.ProductTemperature >= 0 {
			temp = c.ProductTemperature
		}
	case contractx.AgentTypeOrder:
		if v := strings.TrimSpace(c.OrderModel); v != "" {
			modelName = v
		}
		if c.OrderTemperature >= 0 {
			temp = c.OrderTemperature
		}
	case contractx.AgentTypeSearch:
		if v := strings.TrimSpace(c.SearchModel); v != "" {
			modelName = v
		}
		if c.SearchTemperature >= 0 {
			temp = c.SearchTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
