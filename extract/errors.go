package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is matched by *UnsupportedTypeError.
	ErrUnsupportedType = errors.New("unsupported content type")
	// ErrDecode is matched by *DecodeError.
	ErrDecode = errors.New("decode failed")
)

// UnsupportedTypeError reports a media type outside the closed set. It is not
// fatal: Extract still returns an empty string alongside it.
type UnsupportedTypeError struct {
	MediaType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("extract: unsupported content type %q", e.MediaType)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// DecodeError reports bytes that do not form a valid document of the
// declared type.
type DecodeError struct {
	MediaType MediaType
	Message   string
	Err       error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract.%s: %s: %v", e.MediaType, e.Message, e.Err)
	}
	return fmt.Sprintf("extract.%s: %s", e.MediaType, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func decodeError(mt MediaType, message string, err error) error {
	return &DecodeError{MediaType: mt, Message: message, Err: err}
}
