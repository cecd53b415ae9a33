package domain

import (
	"errors"
	"fmt"
)

var (
	ErrGateway          = errors.New("model gateway failure")
	ErrExtraction       = errors.New("structured extraction failure")
	ErrDecode           = errors.New("pdf decode failure")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrInvalidInput     = errors.New("invalid input")
	ErrSessionNotFound  = errors.New("session not found")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
