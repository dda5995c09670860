package orchestratornode

import (
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
)

func ResolveSpecialists(in *GraphState, directory contractx.Directory) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Specialists = resolveSpecialists(in.Intents, directory)
	return in, nil
}

// resolveSpecialists maps intents to specialist descriptors, preserving
// intent order and collapsing a specialist that serves several of the
// matched intents into a single delegation. An intent nobody serves is
// skipped, not failed.
func resolveSpecialists(intents []string, directory contractx.Directory) []contractx.SpecialistDescriptor {
	var resolved []contractx.SpecialistDescriptor
	seen := make(map[string]struct{})

	for _, intent := range intents {
		matches, err := directory.Resolve(intent)
		if err != nil {
			log.Debug().Str("intent", intent).Msg("no specialist registered for intent")
			continue
		}
		for _, sp := range matches {
			if _, ok := seen[sp.ID]; ok {
				continue
			}
			seen[sp.ID] = struct{}{}
			resolved = append(resolved, sp)
		}
	}
	return resolved
}
