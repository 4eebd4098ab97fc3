package main

import (
	"errors"
	"fmt"
)

// CLI errors.
var (
	ErrUsage       = errors.New("usage error")
	ErrReadSpec    = errors.New("failed to read page spec")
	ErrWriteOutput = errors.New("failed to write output")
	ErrPageInvalid = errors.New("page failed validation")
)

// usageError reports a bad command line.
func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// pageInvalidError carries the message shown to page authors.
type pageInvalidError struct {
	message string
}

func (e *pageInvalidError) Error() string { return e.message }

func (e *pageInvalidError) Unwrap() error { return ErrPageInvalid }
