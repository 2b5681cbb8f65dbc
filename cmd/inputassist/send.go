package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Abraxas-365/inputassist/adapters/aws/bedrock"
	"github.com/Abraxas-365/inputassist/adapters/openai"
	"github.com/Abraxas-365/inputassist/assistant"
	"github.com/Abraxas-365/inputassist/config"
	"github.com/Abraxas-365/inputassist/llm"
	"github.com/spf13/cobra"
)

var sendSystem string

var sendCmd = &cobra.Command{
	Use:   "send <source> <n>",
	Short: "Send chunk n with the prefix to the configured chat model",
	Long: `Send chunk n, preceded by the prefix, as a single user message to the
chat model selected by llm.provider (openai or bedrock) and print the reply.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		model, err := newLLM(ctx, cfg)
		if err != nil {
			return err
		}

		a, err := loadSession(ctx, args[0], assistant.WithLLM(model))
		if err != nil {
			return err
		}
		i, err := chunkIndex(args[1], a)
		if err != nil {
			return err
		}

		opts := chatDefaults(cfg)
		if sendSystem != "" {
			opts = append(opts, llm.WithSystem(sendSystem))
		}

		reply, err := a.Send(ctx, i, opts...)
		if err != nil {
			return err
		}

		if usage := reply.Usage; usage != nil {
			logger.Debug("chat usage",
				"prompt_tokens", usage.PromptTokens,
				"completion_tokens", usage.CompletionTokens,
			)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
		return err
	},
}

func init() {
	f := sendCmd.Flags()
	f.String("provider", "", "chat provider: openai or bedrock")
	f.String("model", "", "chat model name or bedrock model id")
	f.Int("max-tokens", 1024, "maximum tokens in the reply")
	f.StringVar(&sendSystem, "system", "", "system prompt")
}

// newLLM builds the chat client named by c.LLM.Provider.
func newLLM(ctx context.Context, c *config.Config) (llm.LLM, error) {
	switch c.LLM.Provider {
	case config.ProviderOpenAI:
		apiKey := c.LLM.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider needs llm.api_key or OPENAI_API_KEY")
		}
		var opts []openai.Option
		if c.LLM.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(c.LLM.BaseURL))
		}
		return openai.NewOpenAILLM(apiKey, c.LLM.Model, opts...), nil

	case config.ProviderBedrock:
		client, err := bedrock.NewClient(ctx, c.AWS.Region)
		if err != nil {
			return nil, err
		}
		return bedrock.NewBedrockLLM(client, bedrock.LLMModelID(c.LLM.Model)), nil

	case "":
		return nil, fmt.Errorf("no chat provider configured: set llm.provider or --provider")

	default:
		return nil, fmt.Errorf("unknown chat provider %q", c.LLM.Provider)
	}
}
