package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Abraxas-365/inputassist/adapters/atotto"
	"github.com/Abraxas-365/inputassist/adapters/aws/s3/s3source"
	"github.com/Abraxas-365/inputassist/adapters/aws/s3/s3storage"
	"github.com/Abraxas-365/inputassist/adapters/file/filesource"
	"github.com/Abraxas-365/inputassist/adapters/web/websource"
	"github.com/Abraxas-365/inputassist/assistant"
	"github.com/Abraxas-365/inputassist/config"
	"github.com/Abraxas-365/inputassist/datasource"
	"github.com/Abraxas-365/inputassist/document"
	"github.com/Abraxas-365/inputassist/llm"
)

// newAssistant builds a session from the resolved config. extra options are
// applied last.
func newAssistant(c *config.Config, extra ...assistant.Option) (*assistant.Assistant, error) {
	opts := []assistant.Option{
		assistant.WithChunkSize(c.Chunk.Size),
		assistant.WithUnit(c.Chunk.Unit),
		assistant.WithTokenModel(c.Tokens.Model),
		assistant.WithPrefix(c.Chunk.Prefix),
		assistant.WithLogger(logger),
		assistant.WithLoadOptions(datasource.WithMaxBytes(c.Source.MaxBytes)),
	}
	if atotto.Available() {
		opts = append(opts, assistant.WithClipboard(atotto.New()))
	}
	return assistant.New(append(opts, extra...)...)
}

// sourceOpener returns the function that turns a reference into a data
// source for the given config.
func sourceOpener(ctx context.Context, c *config.Config) func(ref string) (datasource.DataSource, error) {
	return func(ref string) (datasource.DataSource, error) {
		switch datasource.Kind(ref) {
		case datasource.KindWeb:
			return websource.NewWebSource([]string{ref},
				websource.WithTimeout(c.HTTP.Timeout),
				websource.WithUserAgent(c.HTTP.UserAgent),
			), nil

		case datasource.KindS3:
			bucket, key, err := datasource.ParseS3URI(ref)
			if err != nil {
				return nil, err
			}
			client, err := s3storage.NewClient(ctx, c.AWS.Region)
			if err != nil {
				return nil, err
			}
			return s3source.NewS3Source(s3storage.NewS3Store(client, bucket), bucket, key), nil

		default:
			return filesource.NewFileSource(ref), nil
		}
	}
}

// loadSession builds an assistant and loads ref into it.
func loadSession(ctx context.Context, ref string, extra ...assistant.Option) (*assistant.Assistant, error) {
	a, err := newAssistant(cfg, extra...)
	if err != nil {
		return nil, err
	}

	ds, err := sourceOpener(ctx, cfg)(ref)
	if err != nil {
		return nil, err
	}
	if _, err := a.Load(ctx, ds); err != nil {
		return nil, err
	}
	return a, nil
}

// chunkIndex parses a 1-based chunk number as shown by the chunks command.
func chunkIndex(arg string, a *assistant.Assistant) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid chunk number %q", arg)
	}
	if n < 1 || n > a.Len() {
		return 0, fmt.Errorf("chunk %d out of range: document has %d chunks", n, a.Len())
	}
	return n - 1, nil
}

// tokenCounter returns a counter for the configured model, or nil when the
// tokenizer cannot be loaded. The first call may download the encoding.
func tokenCounter(c *config.Config) document.TokenCounter {
	counter, err := document.NewTiktokenCounter(c.Tokens.Model)
	if err != nil {
		logger.Warn("token counts unavailable", "model", c.Tokens.Model, "error", err)
		return nil
	}
	return counter
}

func chatDefaults(c *config.Config) []llm.Option {
	var opts []llm.Option
	if c.LLM.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(c.LLM.MaxTokens))
	}
	return opts
}
