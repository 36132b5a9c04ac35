// Package errors provides typed error values for the rosecrypt application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe, and it is what the CLI
// relies on to map failures to distinct exit codes.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Key errors: Unusable passphrase or salt (ErrInvalidKey, ErrInvalidSalt)
//   - Carrier errors: Bad dimensions or formats (ErrInvalidDimensions)
//   - Embedding errors: Capacity and validation failures (ErrPayloadTooLarge,
//     ErrCapacityExceeded, ErrChecksumMismatch)
//
// # Usage
//
// Return errors from internal packages:
//
//	if width <= 0 || height <= 0 {
//	    return nil, errors.ErrInvalidDimensions
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Decode(ctx, opts)
//	if errors.Is(err, rcerrors.ErrChecksumMismatch) {
//	    // Wrong key or tampered image; show user-friendly message.
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading carrier %s: %w", path, err)
//
// All rosecrypt errors are terminal. Operations fail fast before expensive
// phases and never produce partial output: decode never returns a partially
// recovered payload, and encode writes no carrier file on failure.
package errors
