package llm

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Usage is the token accounting a provider reports for one reply.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens" yaml:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens" yaml:"completion_tokens"`
	TotalTokens      int `json:"total_tokens" yaml:"total_tokens"`
}

// NewUsage fills TotalTokens for providers that only report the two halves.
func NewUsage(prompt, completion int) *Usage {
	return &Usage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      prompt + completion,
	}
}

// Message is one turn of a chat. Usage is only set on replies.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
	Usage   *Usage `json:"usage,omitempty" yaml:"usage,omitempty"`
}

// UserMessage wraps text as a user turn.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}
