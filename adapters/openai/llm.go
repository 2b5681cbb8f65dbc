package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/Abraxas-365/inputassist/llm"
	"github.com/sashabaranov/go-openai"
)

type OpenAILLM struct {
	client *openai.Client
	model  string
}

type Option func(*openai.ClientConfig)

// WithBaseURL points the client at an OpenAI compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *openai.ClientConfig) {
		c.BaseURL = baseURL
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *openai.ClientConfig) {
		c.HTTPClient = client
	}
}

func NewOpenAILLM(apiKey string, model string, opts ...Option) *OpenAILLM {
	if model == "" {
		model = openai.GPT4o
	}
	config := openai.DefaultConfig(apiKey)
	for _, opt := range opts {
		opt(&config)
	}
	return &OpenAILLM{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (o *OpenAILLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (*llm.Message, error) {
	options := llm.NewChatOptions(llm.ChatOptions{Temperature: 0.1}, opts...)

	openAIMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if options.System != "" {
		openAIMessages = append(openAIMessages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: options.System,
		})
	}
	for _, msg := range messages {
		openAIMessages = append(openAIMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    openAIMessages,
		Temperature: options.Temperature,
		TopP:        options.TopP,
		MaxTokens:   options.MaxTokens,
		Stop:        options.Stop,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, handleOpenAIError("Chat", err)
	}

	if len(resp.Choices) == 0 {
		return nil, &llm.LLMError{
			Op:      "Chat",
			Code:    llm.ErrAPIError,
			Message: "no response choices returned",
		}
	}

	return &llm.Message{
		Role:    resp.Choices[0].Message.Role,
		Content: resp.Choices[0].Message.Content,
		Usage: &llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func handleOpenAIError(op string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 400:
			return &llm.LLMError{
				Op:      op,
				Code:    llm.ErrInvalidInput,
				Message: "invalid request",
				Err:     err,
			}
		case 401:
			return &llm.LLMError{
				Op:      op,
				Code:    llm.ErrUnauthorized,
				Message: "invalid API key",
				Err:     err,
			}
		case 404:
			return &llm.LLMError{
				Op:      op,
				Code:    llm.ErrModelNotAvailable,
				Message: "model not available",
				Err:     err,
			}
		case 429:
			return &llm.LLMError{
				Op:      op,
				Code:    llm.ErrRateLimitExceeded,
				Message: "rate limit exceeded",
				Err:     err,
			}
		case 500:
			return &llm.LLMError{
				Op:      op,
				Code:    llm.ErrAPIError,
				Message: "OpenAI server error",
				Err:     err,
			}
		}
	}

	return &llm.LLMError{
		Op:      op,
		Code:    llm.ErrInternal,
		Message: "unexpected error",
		Err:     err,
	}
}
