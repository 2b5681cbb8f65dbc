package document

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Units a chunk size can be measured in.
const (
	UnitRunes  = "runes"
	UnitTokens = "tokens"
)

// Splitter interface defines methods for splitting text into chunks
type Splitter interface {
	SplitText(text string) ([]string, error)
}

// NewSplitter returns the splitter for unit. model is only used for UnitTokens.
func NewSplitter(unit string, size int, model string) (Splitter, error) {
	switch strings.ToLower(unit) {
	case "", UnitRunes:
		s, err := NewCharacterSplitter(size)
		if err != nil {
			return nil, err
		}
		return s, nil
	case UnitTokens:
		s, err := NewTiktokenSplitter(size, model)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, &SplitterError{
			Op:      "new_splitter",
			Message: fmt.Sprintf("unknown unit %q", unit),
		}
	}
}

// SplitDocuments splits multiple documents using a splitter
func SplitDocuments(splitter Splitter, documents []Document) ([]Document, error) {
	texts := make([]string, len(documents))
	metadatas := make([]map[string]interface{}, len(documents))

	for i, doc := range documents {
		texts[i] = doc.PageContent
		metadatas[i] = doc.Metadata
	}

	return CreateDocuments(splitter, texts, metadatas)
}

// CreateDocuments creates one document per chunk. Each chunk keeps a copy of
// its parent's metadata plus a 1-based "chunk_number".
func CreateDocuments(splitter Splitter, texts []string, metadatas []map[string]interface{}) ([]Document, error) {
	if len(metadatas) == 0 {
		metadatas = make([]map[string]interface{}, len(texts))
		for i := range metadatas {
			metadatas[i] = make(map[string]interface{})
		}
	}

	if len(texts) != len(metadatas) {
		return nil, ErrMetadataTextMismatch
	}

	var documents []Document

	for i := range texts {
		chunks, err := splitter.SplitText(texts[i])
		if err != nil {
			return nil, err
		}

		for n, chunk := range chunks {
			metadata := copyMetadata(metadatas[i])
			metadata["chunk_number"] = n + 1
			documents = append(documents, Document{
				PageContent: chunk,
				Metadata:    metadata,
			})
		}
	}

	return documents, nil
}

// Chunks numbers raw chunk strings for display. counter may be nil.
func Chunks(texts []string, counter TokenCounter) []Chunk {
	chunks := make([]Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = Chunk{
			Number: i + 1,
			Text:   text,
			Runes:  utf8.RuneCountInString(text),
		}
		if counter != nil {
			chunks[i].Tokens = counter.Count(text)
		}
	}
	return chunks
}

func copyMetadata(metadata map[string]interface{}) map[string]interface{} {
	copy := make(map[string]interface{}, len(metadata))
	for k, v := range metadata {
		copy[k] = v
	}
	return copy
}
