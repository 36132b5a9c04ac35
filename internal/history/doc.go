// Package history provides an operation log for Rosecrypt commands.
//
// Every encode and decode is recorded in a per-user history log. This
// makes it possible to answer "which carriers did I write, and when"
// long after the terminal scrollback is gone.
//
// # Log Format
//
// The history log is stored as JSON Lines (one JSON object per line) in
// the user state directory:
//
//	$XDG_STATE_HOME/rosecrypt/history.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Operation ID (UUID)
//   - Operation name
//   - Operation-specific details (carrier path, dimensions, payload size)
//
// The log never records passphrases, derived keys, salts, or payload
// content. Only metadata about the operation is kept.
//
// # Failure Handling
//
// History logging is best-effort. If logging fails (permissions, disk
// full, etc.), the operation continues without error. Operations should
// never fail just because history logging failed.
//
// # Reading Logs
//
// Use ReadEntries() to parse the history log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package history
