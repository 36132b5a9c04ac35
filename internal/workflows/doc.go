// Package workflows provides high-level orchestration for Rosecrypt
// commands.
//
// Workflows coordinate multiple operations across packages (keyring,
// noise, stego, carrier, history) to implement complete user-facing
// features. Each workflow handles a single command's business logic,
// independent of CLI concerns like flag parsing, spinners, and output
// formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Resolving the salt and deriving key material
//   - Generating the noise baseline and palette
//   - Embedding or extracting the payload
//   - Recording history entries
//
// # Available Workflows
//
//   - Encode: Renders a noise carrier and embeds a payload into it
//   - Decode: Recovers a payload from a carrier image
//   - Capacity: Reports how much payload a carrier size can hold
//   - History: Reads and filters the operation history log
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package,
// allowing the CLI layer to provide appropriate user-facing messages
// without string matching. Use errors.Is() to check for specific error
// conditions:
//
//	result, err := workflows.Decode(ctx, opts)
//	if errors.Is(err, rcerrors.ErrChecksumMismatch) {
//	    // Show wrong-key message
//	}
//
// Every error is terminal: a workflow that fails performs no partial
// work visible to the user beyond a possibly pre-existing output file.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first
// parameter. This enables cancellation of long noise generation runs.
package workflows
