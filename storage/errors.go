package storage

import "errors"

// ErrNotFound is matched by a StorageError with Code ErrCodeNotFound.
var ErrNotFound = errors.New("object not found")

// StorageError represents errors that can occur during storage operations
type StorageError struct {
	Op      string
	Key     string
	Err     error
	Code    string
	Message string
}

// Error implements the error interface
func (e *StorageError) Error() string {
	msg := "storage." + e.Op
	if e.Key != "" {
		msg += " " + e.Key
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrNotFound && e.Code == ErrCodeNotFound
}

// Common error codes
const (
	ErrCodeNotFound         = "NotFound"
	ErrCodeInvalidArgument  = "InvalidArgument"
	ErrCodePermissionDenied = "PermissionDenied"
	ErrCodeInternal         = "Internal"
)

// NewStorageError creates a new StorageError
func NewStorageError(op, key string, err error, code, message string) *StorageError {
	return &StorageError{
		Op:      op,
		Key:     key,
		Err:     err,
		Code:    code,
		Message: message,
	}
}
