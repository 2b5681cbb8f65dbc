package assistant

import (
	"log/slog"

	"github.com/Abraxas-365/inputassist/clipboard"
	"github.com/Abraxas-365/inputassist/datasource"
	"github.com/Abraxas-365/inputassist/document"
	"github.com/Abraxas-365/inputassist/llm"
)

// DefaultChunkSize is the chunk length used when none is configured.
const DefaultChunkSize = 15000

// Options contains configuration for the assistant
type Options struct {
	ChunkSize   int
	Unit        string
	TokenModel  string
	Prefix      string
	Logger      *slog.Logger
	Clipboard   clipboard.Clipboard
	Counter     document.TokenCounter
	LLM         llm.LLM // Optional LLM
	LoadOptions []datasource.Option
}

// Option is a function type to modify Options
type Option func(*Options)

// Default options
func defaultOptions() *Options {
	return &Options{
		ChunkSize:  DefaultChunkSize,
		Unit:       document.UnitRunes,
		TokenModel: "gpt-4",
		Logger:     slog.Default(),
	}
}

// WithChunkSize sets the chunk length, in runes or tokens depending on unit
func WithChunkSize(size int) Option {
	return func(o *Options) {
		o.ChunkSize = size
	}
}

// WithUnit sets what a chunk size counts: document.UnitRunes or document.UnitTokens
func WithUnit(unit string) Option {
	return func(o *Options) {
		o.Unit = unit
	}
}

// WithTokenModel sets the model whose tokenizer backs the tokens unit
func WithTokenModel(model string) Option {
	return func(o *Options) {
		o.TokenModel = model
	}
}

// WithPrefix sets the initial prefix
func WithPrefix(prefix string) Option {
	return func(o *Options) {
		o.Prefix = prefix
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithClipboard(cb clipboard.Clipboard) Option {
	return func(o *Options) {
		o.Clipboard = cb
	}
}

// WithTokenCounter adds token counts to the chunk listing
func WithTokenCounter(counter document.TokenCounter) Option {
	return func(o *Options) {
		o.Counter = counter
	}
}

// WithLLM sets the model Send forwards chunks to
func WithLLM(model llm.LLM) Option {
	return func(o *Options) {
		o.LLM = model
	}
}

// WithLoadOptions sets the options passed to every DataSource.Load
func WithLoadOptions(opts ...datasource.Option) Option {
	return func(o *Options) {
		o.LoadOptions = opts
	}
}
