package clipboard

import (
	"errors"
	"sync"
)

// ErrUnavailable is returned when no system clipboard can be reached.
var ErrUnavailable = errors.New("clipboard unavailable")

// Clipboard holds one text value at a time.
type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

// Memory is a process-local clipboard. It backs tests and headless runs.
type Memory struct {
	mu   sync.Mutex
	text string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}
