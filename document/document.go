package document

import "fmt"

// Document represents a text document with metadata
type Document struct {
	PageContent string                 `json:"page_content"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// Chunk is a numbered slice of extracted text as shown to the user.
// Number starts at 1.
type Chunk struct {
	Number int    `json:"number" yaml:"number"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
	Runes  int    `json:"runes" yaml:"runes"`
	Tokens int    `json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

// Label returns the list caption for the chunk, e.g. "Chunk 3".
func (c Chunk) Label() string {
	return fmt.Sprintf("Chunk %d", c.Number)
}
