package main

import (
	"errors"
	"os"

	mvpbuild "github.com/alnah/go-mvpbuild"
	"github.com/alnah/go-mvpbuild/internal/config"
	"github.com/alnah/go-mvpbuild/internal/logging"
	"github.com/alnah/go-mvpbuild/internal/store"
	"github.com/alnah/go-mvpbuild/internal/yamlutil"
)

// Exit codes for the mvpbuild CLI.
// 0=success, 1=general, 2=usage, then custom codes < 126.
const (
	ExitSuccess    = 0 // Page built, server stopped cleanly
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config or page spec file
	ExitIO         = 3 // File not found, permission denied, store unreachable
	ExitBrowser    = 4 // Browser/Chrome errors
	ExitValidation = 5 // Page built but rejected by validation
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrPageInvalid) {
		return ExitValidation
	}

	if errors.Is(err, mvpbuild.ErrBrowserConnect) ||
		errors.Is(err, mvpbuild.ErrPageCreate) ||
		errors.Is(err, mvpbuild.ErrPageLoad) ||
		errors.Is(err, mvpbuild.ErrScreenshot) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadSpec) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, store.ErrRedis) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, yamlutil.ErrEmptyInput) ||
		errors.Is(err, yamlutil.ErrInputTooLarge) ||
		errors.Is(err, mvpbuild.ErrInvalidSize) ||
		errors.Is(err, store.ErrUnknownDriver) {
		return ExitUsage
	}

	return ExitGeneral
}
