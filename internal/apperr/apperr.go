// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package apperr defines the error classes surfaced to the CLI and maps them
// to process exit codes.
package apperr

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a rejected search term or year range. Raised
	// before any network call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExport marks a failure writing the tabular file, workbook, chart,
	// or summary.
	ErrExport = errors.New("export failed")

	// ErrInterrupted marks a run stopped by the user (SIGINT/SIGTERM).
	ErrInterrupted = errors.New("interrupted")

	// ErrInternal covers everything else.
	ErrInternal = errors.New("internal error")
)

// Exit codes returned by ExitCode.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInvalid     = 2
	ExitExport      = 3
	ExitInterrupted = 130
)

// Invalidf returns an error wrapping ErrInvalidInput.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Export wraps err as an export failure for the given destination.
func Export(dest string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrExport, dest, err)
}

// ExitCode maps err to the process exit status. A nil error is ExitOK and
// an unrecognized error is ExitFailure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInterrupted), errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, ErrInvalidInput):
		return ExitInvalid
	case errors.Is(err, ErrExport):
		return ExitExport
	default:
		return ExitFailure
	}
}
