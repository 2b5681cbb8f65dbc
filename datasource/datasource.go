package datasource

import "context"

// Document holds the raw bytes of one document and the media type its
// source reported for them. It lives only until the text is extracted.
type Document struct {
	Data      []byte
	MediaType string
	Source    string
	Metadata  map[string]interface{}
}

// DataSource represents a source of documents
type DataSource interface {
	// Load loads documents from the source
	Load(ctx context.Context, opts ...Option) ([]Document, error)
}
