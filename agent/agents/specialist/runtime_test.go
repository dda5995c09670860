package specialist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/catalog"
	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/task"
	toolx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/tool"
)

// scriptedReasoner returns canned decisions in order and records every
// context it was shown.
type scriptedReasoner struct {
	decisions []contractx.Decision
	err       error
	idx       int
	seen      []contractx.ReasonContext
}

func (r *scriptedReasoner) Decide(_ context.Context, rc contractx.ReasonContext) (contractx.Decision, error) {
	r.seen = append(r.seen, rc)
	if r.err != nil {
		return contractx.Decision{}, r.err
	}
	if r.idx >= len(r.decisions) {
		return contractx.Decision{}, errors.New("no scripted decision left")
	}
	d := r.decisions[r.idx]
	r.idx++
	return d, nil
}

func toolCalls(reqs ...contractx.ToolRequest) contractx.Decision {
	return contractx.Decision{Kind: contractx.DecisionToolCalls, Requests: reqs}
}

func answer(text string) contractx.Decision {
	return contractx.Decision{Kind: contractx.DecisionAnswer, Answer: text}
}

func productDescriptor(tools ...string) contractx.SpecialistDescriptor {
	if len(tools) == 0 {
		tools = []string{toolx.ToolSearchProducts, toolx.ToolProductDetails}
	}
	return contractx.SpecialistDescriptor{
		ID:       "product-agent",
		Type:     contractx.AgentTypeProduct,
		Endpoint: "product-agent",
		Intents:  []string{"product"},
		Tools:    tools,
	}
}

func newTestRuntime(t *testing.T, reasoner contractx.Reasoner, tools ...string) *Runtime {
	t.Helper()

	gateway, err := toolx.NewGateway(catalog.NewMemoryStore())
	if err != nil {
		t.Fatalf("NewGateway() error = %v", err)
	}
	rt, err := NewRuntime(productDescriptor(tools...), "ürün uzmanı promptu", reasoner, gateway)
	if err != nil {
		t.Fatalf("NewRuntime() error = %v", err)
	}
	return rt
}

func newTaskUpdater(t *testing.T, tracker *task.Tracker) *task.Updater {
	t.Helper()

	snap := tracker.Create("product-agent", "s-1", "Kulaklık öner")
	up, err := tracker.Updater(snap.ID)
	if err != nil {
		t.Fatalf("Updater() error = %v", err)
	}
	return up
}

func TestNewRuntimeValidation(t *testing.T) {
	t.Parallel()

	gateway, err := toolx.NewGateway(catalog.NewMemoryStore())
	if err != nil {
		t.Fatalf("NewGateway() error = %v", err)
	}
	reasoner := &scriptedReasoner{}

	cases := []struct {
		name string
		run  func() error
	}{
		{"missing id", func() error {
			d := productDescriptor()
			d.ID = ""
			_, err := NewRuntime(d, "p", reasoner, gateway)
			return err
		}},
		{"missing prompt", func() error {
			_, err := NewRuntime(productDescriptor(), "  ", reasoner, gateway)
			return err
		}},
		{"nil reasoner", func() error {
			_, err := NewRuntime(productDescriptor(), "p", nil, gateway)
			return err
		}},
		{"nil gateway", func() error {
			_, err := NewRuntime(productDescriptor(), "p", reasoner, nil)
			return err
		}},
		{"no tools", func() error {
			d := productDescriptor()
			d.Tools = nil
			_, err := NewRuntime(d, "p", reasoner, gateway)
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := tc.run(); err == nil {
				t.Fatalf("NewRuntime(%s) expected error", tc.name)
			}
		})
	}
}

func TestRuntimeCompletesAfterToolCalls(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{
		decisions: []contractx.Decision{
			toolCalls(contractx.ToolRequest{
				Tool: toolx.ToolSearchProducts,
				Args: map[string]any{"query": "kulaklık"},
			}),
			answer("Sony WH-1000XM5 önerebilirim."),
		},
	}
	rt := newTestRuntime(t, reasoner)
	tracker := task.NewTracker()
	up := newTaskUpdater(t, tracker)

	if err := rt.Execute(context.Background(), contractx.TaskRequest{Text: "Kulaklık öner"}, up); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	snap, err := tracker.Get(up.TaskID())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if snap.State != task.StateCompleted {
		t.Fatalf("task state = %s, want completed", snap.State)
	}
	if snap.Result != "Sony WH-1000XM5 önerebilirim." {
		t.Fatalf("task result = %q", snap.Result)
	}

	// Second decision must see the first step with its gateway result.
	if len(reasoner.seen) != 2 {
		t.Fatalf("reasoner saw %d contexts, want 2", len(reasoner.seen))
	}
	steps := reasoner.seen[1].Steps
	if len(steps) != 1 || len(steps[0].Results) != 1 {
		t.Fatalf("second context steps = %+v", steps)
	}
	if steps[0].Results[0].Error != "" {
		t.Fatalf("tool result error = %q, want success", steps[0].Results[0].Error)
	}
	out, ok := steps[0].Results[0].Result.(toolx.SearchProductsOutput)
	if !ok {
		t.Fatalf("tool result type = %T", steps[0].Results[0].Result)
	}
	if out.Total == 0 {
		t.Fatal("search result fed back to the model is empty")
	}

	var sawProgress bool
	for _, ev := range snap.History {
		if ev.State == task.StateWorking && strings.Contains(ev.Detail, toolx.ToolSearchProducts) {
			sawProgress = true
		}
	}
	if !sawProgress {
		t.Fatal("history has no progress event naming the invoked tool")
	}
}

func TestRuntimeFeedsGatewayErrorsBackAsData(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{
		decisions: []contractx.Decision{
			toolCalls(contractx.ToolRequest{
				Tool: toolx.ToolProductDetails,
				Args: map[string]any{"product_id": "prod-999"},
			}),
			answer("Üzgünüm, bu ürünü bulamadım."),
		},
	}
	rt := newTestRuntime(t, reasoner)
	tracker := task.NewTracker()
	up := newTaskUpdater(t, tracker)

	if err := rt.Execute(context.Background(), contractx.TaskRequest{Text: "prod-999 nedir"}, up); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	snap, _ := tracker.Get(up.TaskID())
	if snap.State != task.StateCompleted {
		t.Fatalf("task state = %s, want completed despite tool error", snap.State)
	}

	results := reasoner.seen[1].Steps[0].Results
	if len(results) != 1 || !strings.Contains(results[0].Error, "not found") {
		t.Fatalf("gateway error was not fed back as data: %+v", results)
	}
}

func TestRuntimeRejectsToolOutsideAllowedSet(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{
		decisions: []contractx.Decision{
			toolCalls(contractx.ToolRequest{Tool: toolx.ToolCancelOrder, Args: map[string]any{"order_id": "ord-001"}}),
			answer("Sipariş iptali benim alanım değil."),
		},
	}
	rt := newTestRuntime(t, reasoner) // product toolset only
	tracker := task.NewTracker()
	up := newTaskUpdater(t, tracker)

	if err := rt.Execute(context.Background(), contractx.TaskRequest{Text: "ord-001 iptal"}, up); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	results := reasoner.seen[1].Steps[0].Results
	if len(results) != 1 || !strings.Contains(results[0].Error, "not available") {
		t.Fatalf("disallowed tool was not rejected as data: %+v", results)
	}
}

func TestRuntimeUnknownGatewayToolBecomesData(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{
		decisions: []contractx.Decision{
			toolCalls(contractx.ToolRequest{Tool: "phantom_tool"}),
			answer("Bu aracı kullanamıyorum."),
		},
	}
	// The descriptor allows phantom_tool, the gateway has never heard of it.
	rt := newTestRuntime(t, reasoner, "phantom_tool")
	tracker := task.NewTracker()
	up := newTaskUpdater(t, tracker)

	if err := rt.Execute(context.Background(), contractx.TaskRequest{Text: "x"}, up); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	results := reasoner.seen[1].Steps[0].Results
	if len(results) != 1 || !strings.Contains(results[0].Error, "unknown tool") {
		t.Fatalf("unknown gateway tool was not surfaced as data: %+v", results)
	}
}

func TestRuntimeFailsAfterIterationLimit(t *testing.T) {
	t.Parallel()

	decisions := make([]contractx.Decision, maxReasoningIterations)
	for i := range decisions {
		decisions[i] = toolCalls(contractx.ToolRequest{
			Tool: toolx.ToolSearchProducts,
			Args: map[string]any{"query": "kulaklık"},
		})
	}
	reasoner := &scriptedReasoner{decisions: decisions}
	rt := newTestRuntime(t, reasoner)
	tracker := task.NewTracker()
	up := newTaskUpdater(t, tracker)

	err := rt.Execute(context.Background(), contractx.TaskRequest{Text: "Kulaklık öner"}, up)
	if !errors.Is(err, contractx.ErrReasoningLoopExceeded) {
		t.Fatalf("Execute() error = %v, want ErrReasoningLoopExceeded", err)
	}

	snap, _ := tracker.Get(up.TaskID())
	if snap.State != task.StateFailed {
		t.Fatalf("task state = %s, want failed", snap.State)
	}
	if !strings.Contains(snap.Error, "10") {
		t.Fatalf("failure reason = %q, want the iteration cap", snap.Error)
	}
	if len(reasoner.seen) != maxReasoningIterations {
		t.Fatalf("reasoner called %d times, want exactly %d", len(reasoner.seen), maxReasoningIterations)
	}
}

func TestRuntimeModelErrorFailsTask(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{err: errors.New("model down")}
	rt := newTestRuntime(t, reasoner)
	tracker := task.NewTracker()
	up := newTaskUpdater(t, tracker)

	err := rt.Execute(context.Background(), contractx.TaskRequest{Text: "merhaba"}, up)
	if err == nil || !strings.Contains(err.Error(), "model down") {
		t.Fatalf("Execute() error = %v, want the model error", err)
	}

	snap, _ := tracker.Get(up.TaskID())
	if snap.State != task.StateFailed || !strings.Contains(snap.Error, "model down") {
		t.Fatalf("task = %s (%q), want failed with reason", snap.State, snap.Error)
	}
}

func TestRuntimeEmptyAnswerFails(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{decisions: []contractx.Decision{answer("   ")}}
	rt := newTestRuntime(t, reasoner)
	tracker := task.NewTracker()
	up := newTaskUpdater(t, tracker)

	err := rt.Execute(context.Background(), contractx.TaskRequest{Text: "merhaba"}, up)
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("Execute() error = %v, want ErrSchemaViolation", err)
	}

	snap, _ := tracker.Get(up.TaskID())
	if snap.State != task.StateFailed {
		t.Fatalf("task state = %s, want failed", snap.State)
	}
}

func TestRuntimeCanceledContextFailsTask(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{decisions: []contractx.Decision{answer("asla ulaşılmaz")}}
	rt := newTestRuntime(t, reasoner)
	tracker := task.NewTracker()
	up := newTaskUpdater(t, tracker)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rt.Execute(ctx, contractx.TaskRequest{Text: "merhaba"}, up)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v, want context.Canceled", err)
	}

	snap, _ := tracker.Get(up.TaskID())
	if snap.State != task.StateFailed || !strings.Contains(snap.Error, "canceled") {
		t.Fatalf("task = %s (%q), want failed with cancel notice", snap.State, snap.Error)
	}
	if len(reasoner.seen) != 0 {
		t.Fatal("reasoner must not run once the context is gone")
	}
}

func TestRuntimeEmptyTaskTextFails(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{}
	rt := newTestRuntime(t, reasoner)
	tracker := task.NewTracker()
	up := newTaskUpdater(t, tracker)

	err := rt.Execute(context.Background(), contractx.TaskRequest{Text: "  "}, up)
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("Execute() error = %v, want ErrValidation", err)
	}

	snap, _ := tracker.Get(up.TaskID())
	if snap.State != task.StateFailed {
		t.Fatalf("task state = %s, want failed", snap.State)
	}
}

func TestRuntimeThreadsConversationContext(t *testing.T) {
	t.Parallel()

	reasoner := &scriptedReasoner{decisions: []contractx.Decision{answer("Tamamdır.")}}
	rt := newTestRuntime(t, reasoner)
	tracker := task.NewTracker()
	up := newTaskUpdater(t, tracker)

	req := contractx.TaskRequest{
		Text:    "Peki stokta var mı?",
		Context: "User: Sony kulaklık var mı?\nAssistant: Evet, WH-1000XM5 mevcut.",
	}
	if err := rt.Execute(context.Background(), req, up); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	input := reasoner.seen[0].Input
	if !strings.Contains(input, "Önceki konuşma:") || !strings.Contains(input, "WH-1000XM5") {
		t.Fatalf("reasoner input is missing the conversation context: %q", input)
	}
	if !strings.Contains(input, "Peki stokta var mı?") {
		t.Fatalf("reasoner input is missing the new message: %q", input)
	}
}
