package contract

import (
	"context"

	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/task"
)

// Reasoner decides the next step of a specialist's loop. Implementations
// are bound to one specialist's toolset up front.
type Reasoner interface {
	Decide(ctx context.Context, rc ReasonContext) (Decision, error)
}

// Answerer produces a plain completion with no tool access. The orchestrator
// uses it when a request routes to no specialist at all.
type Answerer interface {
	Answer(ctx context.Context, system, input string) (string, error)
}

// Specialist executes one delegated task, reporting lifecycle through the
// updater. Execute returns once the task reached a terminal state.
type Specialist interface {
	ID() string
	Execute(ctx context.Context, req TaskRequest, up *task.Updater) error
}

// ToolGateway dispatches one tool invocation. Domain-level failures (unknown
// record, refused cancellation) come back inside ToolResult.Error; the error
// return is reserved for invocation-level failures such as an unknown tool.
type ToolGateway interface {
	Invoke(ctx context.Context, req ToolRequest) (ToolResult, error)
}

// Directory is the specialist registry: a static lookup from intent tags to
// specialist descriptors. Resolve returns every specialist supporting the
// intent, wrapping ErrUnknownSpecialist when there is none; callers decide
// whether an empty match is a routing outcome or a failure.
type Directory interface {
	List() []SpecialistDescriptor
	Resolve(intent string) ([]SpecialistDescriptor, error)
}

// Transport delivers tasks to specialists and streams their lifecycle back.
// Subscribe replays the full event history before streaming live events, so
// a subscriber attaching late still sees every transition in order.
type Transport interface {
	SendTask(ctx context.Context, endpoint string, req TaskRequest) (TaskHandle, error)
	Subscribe(ctx context.Context, h TaskHandle) (<-chan task.StatusEvent, error)
	Task(ctx context.Context, h TaskHandle) (task.Snapshot, error)
}
