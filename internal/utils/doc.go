// Package utils provides shared utility functions for the Rosecrypt application.
//
// This package contains general-purpose helpers used across multiple packages.
// Functions are organized into logical groups:
//
// # I/O Utilities
//
// Functions for reading from stdin and other I/O operations:
//   - ReadStdin: reads a piped payload from standard input
//
// # Terminal Utilities
//
// Functions for terminal detection and interaction:
//   - ReadPassphrase: prompts for a passphrase without echoing it
//   - ReadPassphraseFromTTY: prompts on /dev/tty when stdin carries the payload
//   - IsTerminal: checks if stdin is a terminal
//   - IsTTYAvailable: checks if /dev/tty can be opened
//
// # System Utilities
//
// Functions for interacting with the operating system:
//   - GetUsername: returns the current system username
//   - GetHostname: returns the system hostname
package utils
