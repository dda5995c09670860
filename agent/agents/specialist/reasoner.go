package specialist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
)

type einoReasoner struct {
	runner compose.Runnable[[]*schema.Message, *schema.Message]
}

// NewEinoReasoner binds the tool definitions to the chat model and compiles
// the reasoning graph. The returned Reasoner is stateless; the caller feeds
// the accumulated steps back in on every Decide call.
func NewEinoReasoner(
	ctx context.Context,
	chatModel einomodel.ToolCallingChatModel,
	tools []*schema.ToolInfo,
) (contractx.Reasoner, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("%w: chat model is nil", contractx.ErrValidation)
	}
	if len(tools) == 0 {
		return nil, fmt.Errorf("%w: reasoner needs at least one tool", contractx.ErrValidation)
	}

	toolModel, err := chatModel.WithTools(tools)
	if err != nil {
		return nil, fmt.Errorf("%w: bind tools: %v", contractx.ErrModelInvoke, err)
	}

	runner, err := compileReasonGraph(ctx, toolModel)
	if err != nil {
		return nil, fmt.Errorf("%w: compile reason graph: %v", contractx.ErrModelInvoke, err)
	}
	return &einoReasoner{runner: runner}, nil
}

func (r *einoReasoner) Decide(ctx context.Context, rc contractx.ReasonContext) (contractx.Decision, error) {
	msgs, err := reasonMessages(rc)
	if err != nil {
		return contractx.Decision{}, err
	}

	msg, err := r.runner.Invoke(ctx, msgs)
	if err != nil {
		return contractx.Decision{}, fmt.Errorf("%w: reason invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return contractx.Decision{}, fmt.Errorf("%w: empty model response", contractx.ErrSchemaViolation)
	}

	toolRequests, err := toToolRequests(msg.ToolCalls)
	if err != nil {
		return contractx.Decision{}, err
	}
	if len(toolRequests) > 0 {
		return contractx.Decision{
			Kind:     contractx.DecisionToolCalls,
			Requests: toolRequests,
		}, nil
	}

	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return contractx.Decision{}, fmt.Errorf("%w: model returned neither tool calls nor an answer", contractx.ErrSchemaViolation)
	}
	return contractx.Decision{
		Kind:   contractx.DecisionAnswer,
		Answer: content,
	}, nil
}

// reasonMessages rebuilds the chat transcript from the reason context. Tool
// call ids are deterministic per step so each result message pairs with the
// call that produced it.
func reasonMessages(rc contractx.ReasonContext) ([]*schema.Message, error) {
	msgs := make([]*schema.Message, 0, 2+2*len(rc.Steps))
	msgs = append(msgs,
		schema.SystemMessage(rc.System),
		schema.UserMessage(rc.Input),
	)

	for i, step := range rc.Steps {
		calls := make([]schema.ToolCall, 0, len(step.Requests))
		for j, req := range step.Requests {
			args, err := json.Marshal(req.Args)
			if err != nil {
				return nil, fmt.Errorf("%w: marshal args for tool=%s: %v", contractx.ErrValidation, req.Tool, err)
			}
			calls = append(calls, schema.ToolCall{
				ID:   stepCallID(i, j),
				Type: "function",
				Function: schema.FunctionCall{
					Name:      req.Tool,
					Arguments: string(args),
				},
			})
		}
		msgs = append(msgs, &schema.Message{
			Role:      schema.Assistant,
			ToolCalls: calls,
		})
		for j, res := range step.Results {
			msgs = append(msgs, &schema.Message{
				Role:       schema.Tool,
				ToolCallID: stepCallID(i, j),
				Content:    renderToolResult(res),
			})
		}
	}
	return msgs, nil
}

func stepCallID(step, call int) string {
	return fmt.Sprintf("call_%d_%d", step, call)
}

func renderToolResult(res contractx.ToolResult) string {
	if res.Error != "" {
		payload, _ := json.Marshal(map[string]string{"error": res.Error})
		return string(payload)
	}
	payload, err := json.Marshal(res.Result)
	if err != nil {
		fallback, _ := json.Marshal(map[string]string{"error": "tool result could not be serialized"})
		return string(fallback)
	}
	return string(payload)
}

func toToolRequests(calls []schema.ToolCall) ([]contractx.ToolRequest, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		tool := strings.TrimSpace(call.Function.Name)
		if tool == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}

		args := map[string]any{}
		rawArgs := strings.TrimSpace(call.Function.Arguments)
		if rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, tool, err)
			}
		}

		reqs = append(reqs, contractx.ToolRequest{
			Tool: tool,
			Args: args,
		})
	}
	return reqs, nil
}
