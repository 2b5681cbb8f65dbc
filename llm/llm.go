package llm

import (
	"context"
	"strings"
)

// LLM represents a large language model interface
type LLM interface {
	// Chat generates a response based on the conversation history
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Message, error)
}

// Forward sends text as a single user message and returns the reply.
func Forward(ctx context.Context, model LLM, text string, opts ...Option) (*Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &LLMError{
			Op:      "Forward",
			Code:    ErrInvalidInput,
			Message: "nothing to send",
		}
	}

	reply, err := model.Chat(ctx, []Message{UserMessage(text)}, opts...)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, &LLMError{
			Op:      "Forward",
			Code:    ErrInternal,
			Message: "model returned no message",
		}
	}
	return reply, nil
}
