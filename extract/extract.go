package extract

import (
	"log/slog"
)

// Options configures an Extractor.
type Options struct {
	Logger *slog.Logger
}

// Option is a function type to modify Options
type Option func(*Options)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func defaultOptions() *Options {
	return &Options{
		Logger: slog.Default(),
	}
}

// Extractor turns raw document bytes into plain text, dispatching on the
// media type. It holds no state between calls.
type Extractor struct {
	logger *slog.Logger
}

func New(opts ...Option) *Extractor {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Extractor{logger: options.Logger}
}

// Extract returns the text of data read as mediaType. An unsupported type is
// logged and yields "" with an *UnsupportedTypeError; callers may treat that
// as empty content.
func (e *Extractor) Extract(data []byte, mediaType string) (string, error) {
	mt, err := ParseMediaType(mediaType)
	if err != nil {
		e.logger.Warn("Unsupported content type: "+mediaType, "media_type", mediaType)
		return "", err
	}
	return e.ExtractAs(data, mt)
}

// ExtractAs runs the routine for a known media type.
func (e *Extractor) ExtractAs(data []byte, mt MediaType) (string, error) {
	var (
		text string
		err  error
	)

	switch mt {
	case MediaPDF:
		text, err = extractPDF(data, e.logger)
	case MediaDOCX:
		text, err = extractDOCX(data)
	case MediaText:
		text, err = extractText(data)
	case MediaHTML:
		text, err = extractHTML(data)
	default:
		e.logger.Warn("Unsupported content type: "+string(mt), "media_type", string(mt))
		return "", &UnsupportedTypeError{MediaType: string(mt)}
	}
	if err != nil {
		return "", err
	}

	e.logger.Debug("extracted text", "media_type", string(mt), "bytes", len(data), "chars", len(text))
	return text, nil
}

// Extract uses an Extractor that logs through slog.Default.
func Extract(data []byte, mediaType string) (string, error) {
	return New().Extract(data, mediaType)
}
