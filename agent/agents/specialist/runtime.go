// Package specialist implements the reasoning runtime every specialist agent
// shares: a bounded decide/act loop where the model either requests gateway
// tools or produces the final answer for its delegated task.
package specialist

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/task"
)

// maxReasoningIterations caps the decide/act loop. A task that still has no
// final answer after this many model turns fails instead of spinning.
const maxReasoningIterations = 10

var _ contractx.Specialist = (*Runtime)(nil)

type Runtime struct {
	id       string
	system   string
	reasoner contractx.Reasoner
	gateway  contractx.ToolGateway
	allowed  map[string]struct{}
}

func NewRuntime(
	desc contractx.SpecialistDescriptor,
	systemPrompt string,
	reasoner contractx.Reasoner,
	gateway contractx.ToolGateway,
) (*Runtime, error) {
	if strings.TrimSpace(desc.ID) == "" {
		return nil, fmt.Errorf("%w: specialist id is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: system prompt for specialist=%s", contractx.ErrPromptMissing, desc.ID)
	}
	if reasoner == nil {
		return nil, fmt.Errorf("%w: reasoner for specialist=%s is nil", contractx.ErrValidation, desc.ID)
	}
	if gateway == nil {
		return nil, fmt.Errorf("%w: tool gateway for specialist=%s is nil", contractx.ErrValidation, desc.ID)
	}
	if len(desc.Tools) == 0 {
		return nil, fmt.Errorf("%w: specialist=%s declares no tools", contractx.ErrValidation, desc.ID)
	}

	allowed := make(map[string]struct{}, len(desc.Tools))
	for _, name := range desc.Tools {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}

	return &Runtime{
		id:       desc.ID,
		system:   systemPrompt,
		reasoner: reasoner,
		gateway:  gateway,
		allowed:  allowed,
	}, nil
}

func (r *Runtime) ID() string {
	return r.id
}

// Execute runs the reasoning loop for one task. Every exit path leaves the
// task terminal: completed with the model's answer, or failed with the
// reason. Gateway failures are never raised out of the loop; they go back to
// the model as error results so it can correct itself.
func (r *Runtime) Execute(ctx context.Context, req contractx.TaskRequest, up *task.Updater) error {
	if strings.TrimSpace(req.Text) == "" {
		_ = up.Fail("task text is required")
		return fmt.Errorf("%w: task text is required", contractx.ErrValidation)
	}
	if err := up.StartWork(); err != nil {
		return err
	}

	rc := contractx.ReasonContext{
		System: r.system,
		Input:  buildInput(req),
	}

	for iter := 1; iter <= maxReasoningIterations; iter++ {
		if err := ctx.Err(); err != nil {
			_ = up.Fail("delegation canceled: " + err.Error())
			return err
		}

		decision, err := r.reasoner.Decide(ctx, rc)
		if err != nil {
			_ = up.Fail(fmt.Sprintf("reasoning failed: %v", err))
			return err
		}

		switch decision.Kind {
		case contractx.DecisionAnswer:
			answer := strings.TrimSpace(decision.Answer)
			if answer == "" {
				_ = up.Fail("model produced an empty answer")
				return fmt.Errorf("%w: empty final answer", contractx.ErrSchemaViolation)
			}
			return up.Complete(answer)

		case contractx.DecisionToolCalls:
			if len(decision.Requests) == 0 {
				_ = up.Fail("model requested no tools and gave no answer")
				return fmt.Errorf("%w: empty tool call decision", contractx.ErrSchemaViolation)
			}
			_ = up.Progress("invoking " + toolNames(decision.Requests))
			rc.Steps = append(rc.Steps, contractx.ReasonStep{
				Requests: decision.Requests,
				Results:  r.invokeAll(ctx, decision.Requests),
			})

		default:
			_ = up.Fail(fmt.Sprintf("unknown decision kind %q", decision.Kind))
			return fmt.Errorf("%w: decision kind %q", contractx.ErrSchemaViolation, decision.Kind)
		}
	}

	_ = up.Fail(fmt.Sprintf("no final answer after %d reasoning iterations", maxReasoningIterations))
	return fmt.Errorf("%w: specialist=%s", contractx.ErrReasoningLoopExceeded, r.id)
}

func (r *Runtime) invokeAll(ctx context.Context, reqs []contractx.ToolRequest) []contractx.ToolResult {
	results := make([]contractx.ToolResult, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, r.invokeOne(ctx, req))
	}
	return results
}

func (r *Runtime) invokeOne(ctx context.Context, req contractx.ToolRequest) contractx.ToolResult {
	if _, ok := r.allowed[req.Tool]; !ok {
		return contractx.ToolResult{
			Tool:  req.Tool,
			Error: fmt.Sprintf("tool %s is not available to %s", req.Tool, r.id),
		}
	}
	res, err := r.gateway.Invoke(ctx, req)
	if err != nil {
		return contractx.ToolResult{Tool: req.Tool, Error: err.Error()}
	}
	return res
}

func buildInput(req contractx.TaskRequest) string {
	if strings.TrimSpace(req.Context) == "" {
		return req.Text
	}
	return "Önceki konuşma:\n" + req.Context + "\n\nMüşteri: " + req.Text
}

func toolNames(reqs []contractx.ToolRequest) string {
	names := make([]string, 0, len(reqs))
	for _, req := range reqs {
		names = append(names, req.Tool)
	}
	return strings.Join(names, ", ")
}
