package atotto

import (
	"fmt"

	"github.com/Abraxas-365/inputassist/clipboard"
	atotto "github.com/atotto/clipboard"
)

// System is the desktop clipboard. On Linux it needs xclip, xsel or
// wl-clipboard on PATH.
type System struct{}

func New() *System {
	return &System{}
}

// Available reports whether a clipboard backend was found.
func Available() bool {
	return !atotto.Unsupported
}

func (System) WriteAll(text string) error {
	if atotto.Unsupported {
		return clipboard.ErrUnavailable
	}
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

func (System) ReadAll() (string, error) {
	if atotto.Unsupported {
		return "", clipboard.ErrUnavailable
	}
	text, err := atotto.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}
