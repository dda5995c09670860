package contract

type AgentType string

const (
	AgentTypeOrchestrator AgentType = "orchestrator"
	AgentTypeProduct      AgentType = "product"
	AgentTypeOrder        AgentType = "order"
	AgentTypeSearch       AgentType = "search"
)

// Skill is one advertised capability on a specialist's discovery card.
type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// SpecialistDescriptor is one registry entry: who the specialist is, where
// it listens, which intents route to it and which gateway tools it may call.
type SpecialistDescriptor struct {
	ID           string    `json:"id"`
	Type         AgentType `json:"type"`
	DisplayName  string    `json:"display_name"`
	Description  string    `json:"description"`
	Endpoint     string    `json:"endpoint"`
	Version      string    `json:"version"`
	Intents      []string  `json:"intents"`
	Capabilities []string  `json:"capabilities,omitempty"`
	Tools        []string  `json:"tools,omitempty"`
	Skills       []Skill   `json:"skills,omitempty"`
}

// TaskRequest is the unit of work the orchestrator hands to a specialist.
// Context carries the rendered conversation history; specialists treat it
// as opaque grounding text.
type TaskRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text"`
	Context   string `json:"context,omitempty"`
}

// TaskHandle identifies a delegated task on whichever transport created it.
type TaskHandle struct {
	TaskID   string `json:"task_id"`
	Endpoint string `json:"endpoint,omitempty"`
}

type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// DecisionKind tags the two shapes a reasoning step can take.
type DecisionKind string

const (
	DecisionToolCalls DecisionKind = "tool_calls"
	DecisionAnswer    DecisionKind = "answer"
)

// Decision is the reasoner's verdict for one loop iteration: either a batch
// of tool calls to execute, or the final answer text. Exactly one side is
// populated, selected by Kind.
type Decision struct {
	Kind     DecisionKind  `json:"kind"`
	Requests []ToolRequest `json:"requests,omitempty"`
	Answer   string        `json:"answer,omitempty"`
}

// ReasonStep records one completed loop iteration: the tool calls the
// reasoner asked for and what the gateway returned, errors included.
type ReasonStep struct {
	Requests []ToolRequest `json:"requests"`
	Results  []ToolResult  `json:"results"`
}

// ReasonContext is everything the reasoner sees when deciding the next step.
type ReasonContext struct {
	System string       `json:"system"`
	Input  string       `json:"input"`
	Steps  []ReasonStep `json:"steps,omitempty"`
}
