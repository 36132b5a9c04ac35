// Package bitstream frames payloads for embedding and validates them on
// extraction.
//
// A frame is laid out as:
//
//	version    1 byte
//	flags      1 byte   bit 0: payload is zstd-compressed
//	length     4 bytes  big-endian payload byte count
//	headerTag  4 bytes  keyed BLAKE2b over version|flags|length
//	payloadMAC 8 bytes  keyed BLAKE2b over version|flags|length|payload
//	payload    length bytes
//
// The headerTag lets an extractor authenticate the prefix before trusting
// the length field, so a wrong key fails as a checksum mismatch rather
// than as a nonsense allocation. Both MACs are keyed with material derived
// from the passphrase, which is what makes wrong-key and tampered-carrier
// decodes detectable.
//
// The package also provides the single-bit Writer and Reader used to move
// frames in and out of pixel channels, msb-first within each byte.
package bitstream
