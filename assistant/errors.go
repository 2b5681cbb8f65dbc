package assistant

import (
	"errors"
	"fmt"
)

var (
	ErrNoSuchChunk = errors.New("no such chunk")
	ErrNoClipboard = errors.New("no clipboard configured")
	ErrNoLLM       = errors.New("no llm configured")
)

// AssistantError represents errors raised by session operations
type AssistantError struct {
	Op      string
	Message string
	Err     error
}

func (e *AssistantError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("assistant.%s: %v", e.Op, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("assistant.%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("assistant.%s: %s", e.Op, e.Message)
}

func (e *AssistantError) Unwrap() error {
	return e.Err
}

func noSuchChunk(op string, i, n int) error {
	return &AssistantError{
		Op:      op,
		Message: fmt.Sprintf("index %d out of range [0,%d)", i, n),
		Err:     ErrNoSuchChunk,
	}
}
