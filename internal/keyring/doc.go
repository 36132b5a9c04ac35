// Package keyring derives the keyed seed material that drives every stage
// of the rosecrypt pipeline.
//
// A single passphrase is stretched with argon2id and expanded with
// HKDF-SHA256 into independent sub-seeds: one for the noise field, one for
// the color palette, one for the embedding walk, and one authentication
// key for the payload MAC. Observing any sub-seed (or any output derived
// from it) reveals nothing about the passphrase or the other sub-seeds.
//
// Derivation is intentionally expensive (64 MiB of memory per call) so
// that brute-forcing passphrases against a captured carrier image is
// costly. It is also fully deterministic, which is what makes decoding
// possible: the decoder re-derives the identical Material from the same
// passphrase and salt and replays the encoder's choices.
package keyring
