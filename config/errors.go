package config

import "fmt"

// ConfigError represents errors raised while loading configuration
type ConfigError struct {
	Op      string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config.%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("config.%s: %s", e.Op, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
