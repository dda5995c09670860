package orchestratornode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
)

const fallbackReply = "Üzgünüm, şu anda isteğinizi yanıtlayamıyorum. Lütfen daha sonra tekrar deneyin."

// Synthesize builds the customer-facing reply from the delegation outcomes.
// A lone successful answer passes through verbatim; several answers are
// concatenated in delegation order under the specialist's display name;
// failed delegations become short notices after the answers. When nothing
// was delegated the answerer produces a direct reply, and when even that is
// unavailable a static fallback goes out. This node never errors: by the
// time it runs the customer is owed some reply.
func Synthesize(ctx context.Context, in *GraphState, answerer contractx.Answerer, system string) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	if len(in.Specialists) == 0 {
		in.Reply = directAnswer(ctx, answerer, system, in)
		return in, nil
	}

	in.Reply = synthesizeOutcomes(in.Outcomes)
	return in, nil
}

func synthesizeOutcomes(outcomes []Outcome) string {
	succeeded := 0
	for _, out := range outcomes {
		if out.Err == nil {
			succeeded++
		}
	}

	var answers, notices []string
	for _, out := range outcomes {
		if out.Err != nil {
			notices = append(notices, noticeFor(out))
			continue
		}
		if succeeded == 1 {
			answers = append(answers, strings.TrimSpace(out.Answer))
			continue
		}
		answers = append(answers, fmt.Sprintf("**%s**\n%s", displayName(out.Specialist), strings.TrimSpace(out.Answer)))
	}

	if len(answers) == 0 {
		parts := append([]string{"Üzgünüm, şu anda isteğinizi işleyemedim. Lütfen daha sonra tekrar deneyin."}, notices...)
		return strings.Join(parts, "\n")
	}

	reply := strings.Join(answers, "\n\n")
	if len(notices) > 0 {
		reply += "\n\n" + strings.Join(notices, "\n")
	}
	return reply
}

// noticeFor keeps internal failure detail out of the customer reply; the
// delegation node already logged it.
func noticeFor(out Outcome) string {
	name := displayName(out.Specialist)
	if errors.Is(out.Err, contractx.ErrDelegationTimeout) {
		return fmt.Sprintf("%s zamanında yanıt veremedi.", name)
	}
	return fmt.Sprintf("%s şu anda yanıt veremedi.", name)
}

func displayName(sp contractx.SpecialistDescriptor) string {
	if sp.DisplayName != "" {
		return sp.DisplayName
	}
	return sp.ID
}

func directAnswer(ctx context.Context, answerer contractx.Answerer, system string, in *GraphState) string {
	if answerer == nil {
		return fallbackReply
	}

	input := in.Text
	if in.History != "" {
		input = "Önceki konuşma:\n" + in.History + "\n\nMüşteri: " + in.Text
	}

	reply, err := answerer.Answer(ctx, system, input)
	if err != nil {
		log.Warn().Str("session_id", in.SessionID).Err(err).Msg("direct answer failed")
		return fallbackReply
	}
	if reply = strings.TrimSpace(reply); reply == "" {
		return fallbackReply
	}
	return reply
}
