package contract

import "errors"

var (
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrSchemaViolation = errors.New("model response violates schema")
	ErrPromptMissing   = errors.New("required prompt is missing")
	ErrValidation      = errors.New("validation failed")

	ErrUnknownSpecialist     = errors.New("unknown specialist")
	ErrUnknownTool           = errors.New("unknown tool")
	ErrToolInvocation        = errors.New("tool invocation failed")
	ErrReasoningLoopExceeded = errors.New("reasoning loop exceeded")
	ErrDelegationTimeout     = errors.New("delegation timed out")
)
