package datasource

import (
	"errors"
	"fmt"
)

// ErrNetwork is matched by any DataSourceError with Code ErrCodeNetwork.
var ErrNetwork = errors.New("network error")

// DataSourceError represents errors that can occur during data source operations
type DataSourceError struct {
	Source  string
	Op      string
	Err     error
	Code    string
	Message string
}

func (e *DataSourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("datasource.%s [%s]: %s: %v", e.Op, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("datasource.%s [%s]: %s", e.Op, e.Source, e.Message)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

func (e *DataSourceError) Is(target error) bool {
	return target == ErrNetwork && e.Code == ErrCodeNetwork
}

// Common error codes
const (
	ErrCodeNotFound      = "NotFound"
	ErrCodeInvalidSource = "InvalidSource"
	ErrCodeAccessDenied  = "AccessDenied"
	ErrCodeTooLarge      = "TooLarge"
	ErrCodeNetwork       = "Network"
	ErrCodeInternal      = "Internal"
)
