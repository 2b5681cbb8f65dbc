package document

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter reports how many model tokens a text costs.
type TokenCounter interface {
	Count(text string) int
}

// TiktokenSplitter cuts text into windows of about TokensPerChunk tokens. A
// window is nudged by a few tokens when its edge would split a character.
// Windows do not overlap, so joining the chunks reproduces the input.
type TiktokenSplitter struct {
	TokensPerChunk int
	Model          string
	encoding       *tiktoken.Tiktoken
}

// getEncodingForModel returns the appropriate encoding name for a given model
func getEncodingForModel(model string) string {
	// GPT-4o and o-series models
	if strings.HasPrefix(model, "gpt-4o") ||
		strings.HasPrefix(model, "gpt-4.1") ||
		strings.HasPrefix(model, "o1") ||
		strings.HasPrefix(model, "o3") {
		return "o200k_base"
	}

	// GPT-4 and GPT-3.5 models
	if strings.HasPrefix(model, "gpt-4") ||
		strings.HasPrefix(model, "gpt-3.5-turbo") ||
		model == "text-embedding-ada-002" ||
		model == "text-embedding-3-small" ||
		model == "text-embedding-3-large" {
		return "cl100k_base"
	}

	// Codex and certain Davinci models
	if strings.HasPrefix(model, "code-") ||
		model == "text-davinci-002" ||
		model == "text-davinci-003" {
		return "p50k_base"
	}

	// GPT-3 models
	if strings.HasPrefix(model, "text-davinci-001") ||
		strings.HasPrefix(model, "text-curie-001") ||
		strings.HasPrefix(model, "text-babbage-001") ||
		strings.HasPrefix(model, "text-ada-001") ||
		model == "davinci" ||
		model == "curie" ||
		model == "babbage" ||
		model == "ada" {
		return "r50k_base"
	}

	// Default to cl100k_base if model is unknown
	return "cl100k_base"
}

func loadEncoding(op, model string) (*tiktoken.Tiktoken, error) {
	encodingName := getEncodingForModel(model)
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, &SplitterError{
			Op:      op,
			Message: fmt.Sprintf("failed to get %s encoding for model %s", encodingName, model),
			Err:     err,
		}
	}
	return encoding, nil
}

func NewTiktokenSplitter(tokensPerChunk int, model string) (*TiktokenSplitter, error) {
	if tokensPerChunk <= 0 {
		return nil, invalidSizeError("new_tiktoken_splitter", tokensPerChunk)
	}

	encoding, err := loadEncoding("new_tiktoken_splitter", model)
	if err != nil {
		return nil, err
	}

	return &TiktokenSplitter{
		TokensPerChunk: tokensPerChunk,
		Model:          model,
		encoding:       encoding,
	}, nil
}

func (ts *TiktokenSplitter) SplitText(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	tokens := ts.encoding.Encode(text, nil, nil)
	if len(tokens) == 0 {
		return nil, nil
	}

	chunks := make([]string, 0, (len(tokens)+ts.TokensPerChunk-1)/ts.TokensPerChunk)
	for start := 0; start < len(tokens); {
		end := start + ts.TokensPerChunk
		if end > len(tokens) {
			end = len(tokens)
		}
		end = ts.cutWindow(tokens, start, end)
		chunks = append(chunks, ts.encoding.Decode(tokens[start:end]))
		start = end
	}

	return chunks, nil
}

// cutWindow moves end so the window [start, end) does not stop inside a
// character. Byte level tokens can split a rare code point over up to
// utf8.UTFMax tokens, so the window first shrinks by at most that many
// tokens and only grows when nothing shorter is complete.
func (ts *TiktokenSplitter) cutWindow(tokens []int, start, end int) int {
	complete := func(e int) bool {
		return utf8.ValidString(ts.encoding.Decode(tokens[start:e]))
	}

	if end == len(tokens) || complete(end) {
		return end
	}
	for e := end - 1; e > start && e > end-utf8.UTFMax; e-- {
		if complete(e) {
			return e
		}
	}
	for e := end + 1; e <= len(tokens) && e < end+utf8.UTFMax; e++ {
		if complete(e) {
			return e
		}
	}
	return end
}

// TiktokenCounter counts tokens with the encoding of a given model.
type TiktokenCounter struct {
	Model    string
	encoding *tiktoken.Tiktoken
}

func NewTiktokenCounter(model string) (*TiktokenCounter, error) {
	encoding, err := loadEncoding("new_tiktoken_counter", model)
	if err != nil {
		return nil, err
	}
	return &TiktokenCounter{Model: model, encoding: encoding}, nil
}

func (tc *TiktokenCounter) Count(text string) int {
	return len(tc.encoding.Encode(text, nil, nil))
}
