package document

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is matched by every error caused by a non-positive chunk size.
var ErrInvalidSize = errors.New("chunk size must be positive")

// SplitterError represents errors that can occur during text splitting
type SplitterError struct {
	Op      string
	Message string
	Err     error
}

func (e *SplitterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("splitter.%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("splitter.%s: %s", e.Op, e.Message)
}

func (e *SplitterError) Unwrap() error {
	return e.Err
}

var (
	ErrMetadataTextMismatch = &SplitterError{
		Op:      "split_documents",
		Message: "number of texts and metadata entries must match",
	}
)

func invalidSizeError(op string, size int) error {
	return &SplitterError{
		Op:      op,
		Message: fmt.Sprintf("invalid size %d", size),
		Err:     ErrInvalidSize,
	}
}
