package llm

// ChatOptions represents options for chat completion
type ChatOptions struct {
	Temperature float32  // Controls randomness (0.0 to 2.0)
	TopP        float32  // Controls diversity (0.0 to 1.0)
	MaxTokens   int      // Maximum number of tokens to generate
	Stop        []string // Stop sequences
	System      string   // System prompt sent ahead of the messages
}

// Option is a function type to modify ChatOptions
type Option func(*ChatOptions)

// NewChatOptions applies opts over the given defaults.
func NewChatOptions(defaults ChatOptions, opts ...Option) *ChatOptions {
	options := defaults
	for _, opt := range opts {
		opt(&options)
	}
	return &options
}

// Common option functions
func WithTemperature(temp float32) Option {
	return func(o *ChatOptions) {
		o.Temperature = temp
	}
}

func WithTopP(topP float32) Option {
	return func(o *ChatOptions) {
		o.TopP = topP
	}
}

func WithMaxTokens(tokens int) Option {
	return func(o *ChatOptions) {
		o.MaxTokens = tokens
	}
}

func WithStop(stop []string) Option {
	return func(o *ChatOptions) {
		o.Stop = stop
	}
}

func WithSystem(system string) Option {
	return func(o *ChatOptions) {
		o.System = system
	}
}
