package pipeline

import (
	"errors"
	"fmt"
)

// ErrSourceNotConfigured is returned for a nil Source.
var ErrSourceNotConfigured = errors.New("source not configured")

func errNotConfigured(name string) error {
	return fmt.Errorf("%s: %w", name, ErrSourceNotConfigured)
}
