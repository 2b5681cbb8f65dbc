package assistant

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Abraxas-365/inputassist/datasource"
	"github.com/Abraxas-365/inputassist/document"
	"github.com/Abraxas-365/inputassist/extract"
	"github.com/Abraxas-365/inputassist/llm"
	"github.com/google/uuid"
)

// Assistant holds the state of one session: the text of the last loaded
// document, its chunks, the prefix and the selected chunk. It is not safe
// for concurrent use.
type Assistant struct {
	extractor *extract.Extractor
	splitter  document.Splitter
	logger    *slog.Logger
	opts      *Options

	loadID   string
	source   string
	text     string
	chunks   []string
	selected int
}

// New creates an Assistant. It fails when the chunk size or unit is invalid.
func New(opts ...Option) (*Assistant, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	splitter, err := document.NewSplitter(options.Unit, options.ChunkSize, options.TokenModel)
	if err != nil {
		return nil, err
	}

	return &Assistant{
		extractor: extract.New(extract.WithLogger(options.Logger)),
		splitter:  splitter,
		logger:    options.Logger,
		opts:      options,
		selected:  -1,
	}, nil
}

// GetOptions returns a copy of the current options
func (a *Assistant) GetOptions() Options {
	return *a.opts
}

// Clear drops the loaded document and its chunks. The prefix is kept.
func (a *Assistant) Clear() {
	a.loadID = ""
	a.source = ""
	a.text = ""
	a.chunks = nil
	a.selected = -1
}

// Load replaces the session content with the document(s) from ds. State is
// cleared first, so a failed load leaves no chunks behind.
func (a *Assistant) Load(ctx context.Context, ds datasource.DataSource) (int, error) {
	a.Clear()

	docs, err := a.Fetch(ctx, ds)
	if err != nil {
		return 0, err
	}
	return a.Ingest(docs)
}

// Fetch loads raw documents without touching session state, so it may run
// off the goroutine that owns the Assistant.
func (a *Assistant) Fetch(ctx context.Context, ds datasource.DataSource) ([]datasource.Document, error) {
	docs, err := ds.Load(ctx, a.opts.LoadOptions...)
	if err != nil {
		a.logger.Error("Error fetching document: "+err.Error(), "error", err)
		return nil, err
	}
	return docs, nil
}

// Ingest extracts and chunks docs, replacing the current content. Documents
// of an unsupported type are skipped. A decode failure aborts the whole
// ingest.
func (a *Assistant) Ingest(docs []datasource.Document) (int, error) {
	a.Clear()
	loadID := uuid.NewString()

	var (
		texts   []string
		sources []string
	)
	for _, doc := range docs {
		text, err := a.extractor.Extract(doc.Data, doc.MediaType)
		if err != nil {
			if errors.Is(err, extract.ErrUnsupportedType) {
				a.logger.Debug("skipping document", "load_id", loadID, "source", doc.Source, "media_type", doc.MediaType)
				continue
			}
			a.logger.Error("extraction failed", "load_id", loadID, "source", doc.Source, "error", err)
			return 0, err
		}
		texts = append(texts, text)
		sources = append(sources, doc.Source)
	}

	text := strings.Join(texts, "\n")
	chunks, err := a.splitter.SplitText(text)
	if err != nil {
		return 0, err
	}

	a.loadID = loadID
	a.source = strings.Join(sources, ", ")
	a.text = text
	a.chunks = chunks

	a.logger.Info("document loaded",
		"load_id", loadID,
		"source", a.source,
		"documents", len(texts),
		"chars", len(text),
		"chunks", len(chunks),
	)
	return len(chunks), nil
}

// SetChunkSize changes the chunk size and re-chunks the loaded text. An
// invalid size leaves everything unchanged.
func (a *Assistant) SetChunkSize(size int) error {
	splitter, err := document.NewSplitter(a.opts.Unit, size, a.opts.TokenModel)
	if err != nil {
		return err
	}

	chunks, err := splitter.SplitText(a.text)
	if err != nil {
		return err
	}

	a.splitter = splitter
	a.opts.ChunkSize = size
	a.chunks = chunks
	a.selected = -1
	return nil
}

func (a *Assistant) ChunkSize() int {
	return a.opts.ChunkSize
}

func (a *Assistant) SetPrefix(prefix string) {
	a.opts.Prefix = prefix
}

func (a *Assistant) Prefix() string {
	return a.opts.Prefix
}

// Len returns the number of chunks.
func (a *Assistant) Len() int {
	return len(a.chunks)
}

// Chunks returns the numbered chunk listing.
func (a *Assistant) Chunks() []document.Chunk {
	return document.Chunks(a.chunks, a.opts.Counter)
}

// Text returns the full extracted text of the current load.
func (a *Assistant) Text() string {
	return a.text
}

func (a *Assistant) Source() string {
	return a.source
}

// LoadID identifies the current load in logs. Empty when nothing is loaded.
func (a *Assistant) LoadID() string {
	return a.loadID
}

// Selected returns the selected index, or -1.
func (a *Assistant) Selected() int {
	return a.selected
}

// Compose returns the prefix with surrounding whitespace removed, a newline,
// then chunk i. The newline is present even when the prefix is empty.
func (a *Assistant) Compose(i int) (string, error) {
	if i < 0 || i >= len(a.chunks) {
		return "", noSuchChunk("Compose", i, len(a.chunks))
	}
	return strings.TrimSpace(a.opts.Prefix) + "\n" + a.chunks[i], nil
}

// Select marks chunk i as selected and returns its composed text.
func (a *Assistant) Select(i int) (string, error) {
	text, err := a.Compose(i)
	if err != nil {
		return "", err
	}
	a.selected = i
	return text, nil
}

// Copy writes the composed text of chunk i to the clipboard.
func (a *Assistant) Copy(i int) error {
	if a.opts.Clipboard == nil {
		return &AssistantError{Op: "Copy", Err: ErrNoClipboard}
	}

	text, err := a.Compose(i)
	if err != nil {
		return err
	}
	if err := a.opts.Clipboard.WriteAll(text); err != nil {
		return &AssistantError{Op: "Copy", Message: "failed to write clipboard", Err: err}
	}

	a.logger.Debug("chunk copied", "load_id", a.loadID, "chunk", i+1, "chars", len(text))
	return nil
}

// Send forwards the composed text of chunk i to the configured LLM.
func (a *Assistant) Send(ctx context.Context, i int, opts ...llm.Option) (*llm.Message, error) {
	if a.opts.LLM == nil {
		return nil, &AssistantError{Op: "Send", Err: ErrNoLLM}
	}

	text, err := a.Compose(i)
	if err != nil {
		return nil, err
	}

	a.logger.Info("sending chunk", "load_id", a.loadID, "chunk", i+1)
	return llm.Forward(ctx, a.opts.LLM, text, opts...)
}
