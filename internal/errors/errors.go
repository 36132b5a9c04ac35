package errors

import "errors"

// Key errors indicate the passphrase or salt cannot be used for derivation.
var (
	// ErrInvalidKey indicates the passphrase is empty or otherwise unusable.
	ErrInvalidKey = errors.New("invalid key: passphrase must not be empty")

	// ErrInvalidSalt indicates the salt is malformed or has the wrong length.
	ErrInvalidSalt = errors.New("invalid salt")
)

// Carrier errors indicate issues with the carrier image or its dimensions.
var (
	// ErrInvalidDimensions indicates a non-positive carrier width or height.
	ErrInvalidDimensions = errors.New("invalid dimensions: width and height must be positive")

	// ErrUnsupportedFormat indicates the carrier file format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported carrier format")

	// ErrUnknownNoiseKind indicates the noise kind name is not recognized.
	ErrUnknownNoiseKind = errors.New("unknown noise kind")
)

// Embedding errors indicate the payload cannot fit or cannot be recovered.
var (
	// ErrPayloadTooLarge indicates the payload plus framing exceeds carrier capacity.
	ErrPayloadTooLarge = errors.New("payload too large for carrier dimensions")

	// ErrCapacityExceeded indicates a decoded length prefix implies more bits
	// than the carrier can hold.
	ErrCapacityExceeded = errors.New("length prefix exceeds carrier capacity")

	// ErrChecksumMismatch indicates payload validation failed: wrong key,
	// corrupted carrier, or an image that carries no rosecrypt payload.
	ErrChecksumMismatch = errors.New("checksum mismatch: wrong key or corrupted carrier")
)

// Command errors indicate issues around command orchestration rather than
// the encoding pipeline itself.
var (
	// ErrOutputExists indicates the output path already exists and --force was not given.
	ErrOutputExists = errors.New("output file already exists")

	// ErrNoHistory indicates no operations have been recorded yet.
	ErrNoHistory = errors.New("no history entries found")

	// ErrInvalidDateFormat indicates a date filter could not be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
