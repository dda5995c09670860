// Package a2a implements the agent-to-agent delegation surface: discovery
// cards, the in-process transport the default deployment uses, and an HTTP
// client for specialists running as separate services.
package a2a

import (
	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
)

// AgentCard is the discovery document served at /.well-known/agent.json.
// Field names follow the published card schema, hence the camelCase tags.
type AgentCard struct {
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	URL                string           `json:"url"`
	Version            string           `json:"version"`
	DefaultInputModes  []string         `json:"defaultInputModes"`
	DefaultOutputModes []string         `json:"defaultOutputModes"`
	Capabilities       CardCapabilities `json:"capabilities"`
	Skills             []CardSkill      `json:"skills"`
}

type CardCapabilities struct {
	Streaming bool `json:"streaming"`
}

type CardSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// CardFor renders a registry descriptor as its discovery card. Streaming is
// advertised false: subscribers poll task history instead of holding an SSE
// stream open.
func CardFor(d contractx.SpecialistDescriptor) AgentCard {
	card := AgentCard{
		Name:               d.DisplayName,
		Description:        d.Description,
		URL:                d.Endpoint,
		Version:            d.Version,
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Capabilities:       CardCapabilities{Streaming: false},
	}
	if card.Name == "" {
		card.Name = d.ID
	}
	for _, sk := range d.Skills {
		card.Skills = append(card.Skills, CardSkill{
			ID:          sk.ID,
			Name:        sk.Name,
			Description: sk.Description,
			Tags:        sk.Tags,
			Examples:    sk.Examples,
		})
	}
	return card
}
