package document

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewTiktokenSplitter(t *testing.T) {
	tests := []struct {
		name           string
		tokensPerChunk int
		model          string
		wantErr        bool
	}{
		{
			name:           "Valid parameters",
			tokensPerChunk: 100,
			model:          "gpt-4",
			wantErr:        false,
		},
		{
			name:           "Zero tokens per chunk",
			tokensPerChunk: 0,
			model:          "gpt-4",
			wantErr:        true,
		},
		{
			name:           "Negative tokens per chunk",
			tokensPerChunk: -5,
			model:          "gpt-4",
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splitter, err := NewTiktokenSplitter(tt.tokensPerChunk, tt.model)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSize) {
					t.Errorf("NewTiktokenSplitter() error = %v, want ErrInvalidSize", err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewTiktokenSplitter() unexpected error = %v", err)
				return
			}
			if splitter == nil {
				t.Error("NewTiktokenSplitter() returned nil splitter")
			}
		})
	}
}

func TestTiktokenSplitter_SplitText(t *testing.T) {
	longText := strings.Repeat("This is a test sentence. ", 100)
	shortText := "This is a short test sentence."

	tests := []struct {
		name           string
		text           string
		tokensPerChunk int
		wantChunks     int
	}{
		{
			name:           "Empty text",
			text:           "",
			tokensPerChunk: 100,
			wantChunks:     0,
		},
		{
			name:           "Short text within chunk size",
			text:           shortText,
			tokensPerChunk: 100,
			wantChunks:     1,
		},
		{
			name:           "Long text with multiple chunks",
			text:           longText,
			tokensPerChunk: 50,
			wantChunks:     -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splitter, err := NewTiktokenSplitter(tt.tokensPerChunk, "gpt-4")
			if err != nil {
				t.Fatalf("Failed to create splitter: %v", err)
			}

			chunks, err := splitter.SplitText(tt.text)
			if err != nil {
				t.Fatalf("SplitText() unexpected error = %v", err)
			}

			if tt.wantChunks >= 0 && len(chunks) != tt.wantChunks {
				t.Errorf("SplitText() returned %d chunks, want %d", len(chunks), tt.wantChunks)
			}
			if tt.wantChunks < 0 && len(chunks) < 2 {
				t.Errorf("SplitText() returned %d chunks, want several", len(chunks))
			}

			for i, chunk := range chunks {
				if chunk == "" {
					t.Errorf("Chunk %d is empty", i)
				}
			}

			// Windows do not overlap, so the chunks add back up to the input.
			if joined := strings.Join(chunks, ""); joined != tt.text {
				t.Errorf("joined chunks = %q, want %q", joined, tt.text)
			}
		})
	}
}

func TestTiktokenSplitter_SplitTextKeepsCharactersWhole(t *testing.T) {
	// Rare code points that byte level encodings spread over several tokens.
	text := "\U0001D518\U0001D52B\U0001D526 \U0001FABF\U0001F99C \uA66E\u2E3B \U00013000 end"

	for _, size := range []int{1, 2, 3, 5} {
		t.Run(fmt.Sprintf("size %d", size), func(t *testing.T) {
			splitter, err := NewTiktokenSplitter(size, "gpt-4")
			if err != nil {
				t.Fatalf("Failed to create splitter: %v", err)
			}

			chunks, err := splitter.SplitText(text)
			if err != nil {
				t.Fatalf("SplitText() unexpected error = %v", err)
			}

			for i, chunk := range chunks {
				if chunk == "" {
					t.Errorf("Chunk %d is empty", i)
				}
				if !utf8.ValidString(chunk) {
					t.Errorf("Chunk %d = %q is not valid UTF-8", i, chunk)
				}
			}
			if joined := strings.Join(chunks, ""); joined != text {
				t.Errorf("joined chunks = %q, want %q", joined, text)
			}
		})
	}
}

func TestTiktokenCounter_Count(t *testing.T) {
	counter, err := NewTiktokenCounter("gpt-4")
	if err != nil {
		t.Fatalf("Failed to create counter: %v", err)
	}

	if got := counter.Count(""); got != 0 {
		t.Errorf("Count(\"\") = %d, want 0", got)
	}

	short := counter.Count("hello world")
	long := counter.Count(strings.Repeat("hello world ", 20))
	if short <= 0 || long <= short {
		t.Errorf("Count() short = %d, long = %d, want 0 < short < long", short, long)
	}
}

func TestSplitDocuments(t *testing.T) {
	docs := []Document{
		{
			PageContent: "This is document 1.",
			Metadata: map[string]interface{}{
				"source": "test1",
			},
		},
		{
			PageContent: strings.Repeat("This is document 2 with longer content. ", 50),
			Metadata: map[string]interface{}{
				"source": "test2",
			},
		},
	}

	splitter, err := NewCharacterSplitter(100)
	if err != nil {
		t.Fatalf("Failed to create splitter: %v", err)
	}

	splitDocs, err := SplitDocuments(splitter, docs)
	if err != nil {
		t.Fatalf("SplitDocuments() unexpected error = %v", err)
	}

	longDocChunks := 0
	for _, doc := range splitDocs {
		if doc.Metadata == nil {
			t.Fatal("Split document has nil metadata")
		}
		if doc.PageContent == "" {
			t.Error("Split document has empty content")
		}
		if doc.Metadata["source"] == "test2" {
			longDocChunks++
			if doc.Metadata["chunk_number"] != longDocChunks {
				t.Errorf("chunk_number = %v, want %d", doc.Metadata["chunk_number"], longDocChunks)
			}
		}
	}
	if longDocChunks != 20 {
		t.Errorf("Expected 20 chunks for long document, got %d", longDocChunks)
	}

	// Parent metadata is copied, not shared.
	if _, ok := docs[1].Metadata["chunk_number"]; ok {
		t.Error("SplitDocuments() mutated the input metadata")
	}

	if _, err := CreateDocuments(splitter, []string{"a", "b"}, []map[string]interface{}{{}}); !errors.Is(err, ErrMetadataTextMismatch) {
		t.Errorf("CreateDocuments() error = %v, want ErrMetadataTextMismatch", err)
	}
}

func TestNewSplitter(t *testing.T) {
	tests := []struct {
		name    string
		unit    string
		size    int
		wantErr bool
	}{
		{name: "Default unit", unit: "", size: 10},
		{name: "Runes", unit: UnitRunes, size: 10},
		{name: "Tokens", unit: UnitTokens, size: 10},
		{name: "Unknown unit", unit: "pages", size: 10, wantErr: true},
		{name: "Bad size", unit: UnitRunes, size: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splitter, err := NewSplitter(tt.unit, tt.size, "gpt-4")
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSplitter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && splitter == nil {
				t.Error("NewSplitter() returned nil splitter")
			}
		})
	}
}

func TestChunks(t *testing.T) {
	chunks := Chunks([]string{"héllo", "wo"}, nil)
	if len(chunks) != 2 {
		t.Fatalf("Chunks() returned %d chunks, want 2", len(chunks))
	}
	if chunks[0].Number != 1 || chunks[0].Runes != 5 || chunks[0].Label() != "Chunk 1" {
		t.Errorf("Chunks()[0] = %+v", chunks[0])
	}
	if chunks[1].Number != 2 || chunks[1].Tokens != 0 {
		t.Errorf("Chunks()[1] = %+v", chunks[1])
	}
}

func TestGetEncodingForModel(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		expected string
	}{
		{
			name:     "GPT-4",
			model:    "gpt-4",
			expected: "cl100k_base",
		},
		{
			name:     "GPT-4o",
			model:    "gpt-4o-mini",
			expected: "o200k_base",
		},
		{
			name:     "GPT-3.5 Turbo",
			model:    "gpt-3.5-turbo",
			expected: "cl100k_base",
		},
		{
			name:     "Davinci",
			model:    "text-davinci-002",
			expected: "p50k_base",
		},
		{
			name:     "Unknown model",
			model:    "unknown-model",
			expected: "cl100k_base",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getEncodingForModel(tt.model)
			if result != tt.expected {
				t.Errorf("getEncodingForModel() = %v, want %v", result, tt.expected)
			}
		})
	}
}
