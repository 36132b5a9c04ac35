package main

import (
	"errors"
	"os"

	"github.com/stewinjo/rosecrypt/cmd"
	rcerrors "github.com/stewinjo/rosecrypt/internal/errors"
)

// Exit codes, one per failure class, so scripts can tell what went wrong
// without parsing stderr.
const (
	exitOK = iota
	exitGeneric
	exitInvalidKey
	exitPayloadTooLarge
	exitCapacityExceeded
	exitChecksumMismatch
	exitInvalidDimensions
	exitUnsupportedFormat
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
	os.Exit(exitOK)
}

// exitCode maps a command error to its process exit code.
func exitCode(err error) int {
	switch {
	case errors.Is(err, rcerrors.ErrInvalidKey), errors.Is(err, rcerrors.ErrInvalidSalt):
		return exitInvalidKey
	case errors.Is(err, rcerrors.ErrPayloadTooLarge):
		return exitPayloadTooLarge
	case errors.Is(err, rcerrors.ErrCapacityExceeded):
		return exitCapacityExceeded
	case errors.Is(err, rcerrors.ErrChecksumMismatch):
		return exitChecksumMismatch
	case errors.Is(err, rcerrors.ErrInvalidDimensions):
		return exitInvalidDimensions
	case errors.Is(err, rcerrors.ErrUnsupportedFormat):
		return exitUnsupportedFormat
	default:
		return exitGeneric
	}
}
