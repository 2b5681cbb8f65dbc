package websource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Abraxas-365/inputassist/datasource"
)

// DefaultUserAgent is sent when no other agent is configured.
const DefaultUserAgent = "inputassist/1.0"

type Options struct {
	// Timeout bounds the whole request. Zero means no timeout.
	Timeout   time.Duration
	UserAgent string
	Client    *http.Client
}

type Option func(*Options)

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

func WithUserAgent(userAgent string) Option {
	return func(o *Options) {
		o.UserAgent = userAgent
	}
}

// WithHTTPClient replaces the client. Its own Timeout takes precedence.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.Client = client
	}
}

// WebSource fetches each URL with a single GET. Failures are not retried.
type WebSource struct {
	urls      []string
	client    *http.Client
	userAgent string
}

func NewWebSource(urls []string, opts ...Option) *WebSource {
	options := &Options{UserAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(options)
	}

	client := options.Client
	if client == nil {
		client = &http.Client{
			Timeout: options.Timeout,
		}
	}

	return &WebSource{
		urls:      urls,
		client:    client,
		userAgent: options.UserAgent,
	}
}

func (w *WebSource) Load(ctx context.Context, opts ...datasource.Option) ([]datasource.Document, error) {
	options := datasource.NewLoadOptions(opts...)

	var documents []datasource.Document

	for _, u := range w.urls {
		if options.Full(len(documents)) {
			break
		}

		metadata := map[string]interface{}{
			"url": u,
		}

		if !options.Accept(metadata) {
			continue
		}

		data, mediaType, err := w.fetchURL(ctx, u, options.MaxBytes)
		if err != nil {
			return nil, err
		}
		metadata["content_type"] = mediaType

		documents = append(documents, datasource.Document{
			Data:      data,
			MediaType: mediaType,
			Source:    u,
			Metadata:  metadata,
		})
	}

	return documents, nil
}

func (w *WebSource) fetchURL(ctx context.Context, rawURL string, maxBytes int64) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", networkError(err, "invalid URL")
	}
	if w.userAgent != "" {
		req.Header.Set("User-Agent", w.userAgent)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, "", networkError(err, "failed to fetch URL")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, "", networkError(nil, "failed to fetch URL: "+resp.Status)
	}

	var body io.Reader = resp.Body
	if maxBytes > 0 {
		body = io.LimitReader(resp.Body, maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", networkError(err, "failed to read response body")
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, "", &datasource.DataSourceError{
			Source:  "web",
			Op:      "fetchURL",
			Code:    datasource.ErrCodeTooLarge,
			Message: fmt.Sprintf("response exceeds %d bytes", maxBytes),
		}
	}

	return data, mediaType(resp.Header.Get("Content-Type"), rawURL), nil
}

// mediaType strips parameters from the Content-Type header. Without the
// header the URL path extension is used instead.
func mediaType(header, rawURL string) string {
	if mt := datasource.ParseContentType(header); mt != "" {
		return mt
	}
	if u, err := url.Parse(rawURL); err == nil {
		return datasource.GuessMediaType(u.Path)
	}
	return ""
}

func networkError(err error, message string) error {
	return &datasource.DataSourceError{
		Source:  "web",
		Op:      "fetchURL",
		Err:     err,
		Code:    datasource.ErrCodeNetwork,
		Message: message,
	}
}
