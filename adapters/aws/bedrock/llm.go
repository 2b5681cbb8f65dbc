package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Abraxas-365/inputassist/llm"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go"
	"github.com/aws/smithy-go/ptr"
)

// LLMModelID represents available Bedrock models
type LLMModelID string

const (
	Claude3Haiku   LLMModelID = "anthropic.claude-3-haiku-20240307-v1:0"
	Claude3Sonnet  LLMModelID = "anthropic.claude-3-sonnet-20240229-v1:0"
	Claude35Sonnet LLMModelID = "anthropic.claude-3-5-sonnet-20240620-v1:0"
)

// Client is the subset of *bedrockruntime.Client the adapter calls.
type Client interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type BedrockLLM struct {
	client Client
	model  LLMModelID
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Messages         []anthropicMessage `json:"messages"`
	System           string             `json:"system,omitempty"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float32            `json:"temperature,omitempty"`
	TopP             float32            `json:"top_p,omitempty"`
	StopSequences    []string           `json:"stop_sequences,omitempty"`
	AnthropicVersion string             `json:"anthropic_version"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type anthropicResponse struct {
	Type       string             `json:"type,omitempty"`
	Role       string             `json:"role,omitempty"`
	Content    []anthropicContent `json:"content,omitempty"`
	StopReason string             `json:"stop_reason,omitempty"`
	Model      string             `json:"model,omitempty"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func NewBedrockLLM(client Client, model LLMModelID) *BedrockLLM {
	if model == "" {
		model = Claude3Haiku
	}
	return &BedrockLLM{
		client: client,
		model:  model,
	}
}

// NewClient builds a Bedrock runtime client from the default credential chain.
func NewClient(ctx context.Context, region string) (*bedrockruntime.Client, error) {
	var optFns []func(*awsconfig.LoadOptions) error
	if region != "" {
		optFns = append(optFns, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, &llm.LLMError{
			Op:      "NewClient",
			Code:    llm.ErrInternal,
			Message: "failed to load aws config",
			Err:     err,
		}
	}
	return bedrockruntime.NewFromConfig(cfg), nil
}

// convertToAnthropicMessages maps roles onto user/assistant. System
// messages are folded into the system prompt.
func convertToAnthropicMessages(messages []llm.Message) ([]anthropicMessage, string) {
	var system []string
	anthropicMsgs := make([]anthropicMessage, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			system = append(system, msg.Content)
			continue
		case llm.RoleAssistant:
		default:
			msg.Role = llm.RoleUser
		}
		anthropicMsgs = append(anthropicMsgs, anthropicMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return anthropicMsgs, strings.Join(system, "\n")
}

func (b *BedrockLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (*llm.Message, error) {
	options := llm.NewChatOptions(llm.ChatOptions{
		Temperature: 0.7,
		MaxTokens:   2000,
	}, opts...)

	if !strings.HasPrefix(string(b.model), "anthropic.") {
		return nil, &llm.LLMError{
			Op:      "Chat",
			Code:    llm.ErrModelNotAvailable,
			Message: "unsupported model " + string(b.model),
		}
	}

	anthropicMsgs, system := convertToAnthropicMessages(messages)
	if options.System != "" {
		system = strings.TrimSpace(options.System + "\n" + system)
	}

	requestBody, err := json.Marshal(anthropicRequest{
		Messages:         anthropicMsgs,
		System:           system,
		MaxTokens:        options.MaxTokens,
		Temperature:      options.Temperature,
		TopP:             options.TopP,
		StopSequences:    options.Stop,
		AnthropicVersion: "bedrock-2023-05-31",
	})
	if err != nil {
		return nil, &llm.LLMError{
			Op:      "Chat",
			Code:    llm.ErrInternal,
			Message: "failed to marshal request",
			Err:     err,
		}
	}

	output, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     ptr.String(string(b.model)),
		Body:        requestBody,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return nil, handleBedrockError("Chat", err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(output.Body, &resp); err != nil {
		return nil, &llm.LLMError{
			Op:      "Chat",
			Code:    llm.ErrAPIError,
			Message: "failed to unmarshal response",
			Err:     err,
		}
	}

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	return &llm.Message{
		Role:    llm.RoleAssistant,
		Content: content.String(),
		Usage:   llm.NewUsage(resp.Usage.InputTokens, resp.Usage.OutputTokens),
	}, nil
}

func handleBedrockError(op string, err error) error {
	if err == nil {
		return nil
	}

	code := llm.ErrAPIError
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ThrottlingException", "ServiceQuotaExceededException":
			code = llm.ErrRateLimitExceeded
		case "AccessDeniedException", "UnrecognizedClientException":
			code = llm.ErrUnauthorized
		case "ValidationException":
			code = llm.ErrInvalidInput
		case "ResourceNotFoundException", "ModelNotReadyException":
			code = llm.ErrModelNotAvailable
		}
	}

	return &llm.LLMError{
		Op:      op,
		Code:    code,
		Message: "Bedrock API error",
		Err:     err,
	}
}
