package keyring

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"

	rcerrors "github.com/stewinjo/rosecrypt/internal/errors"
)

// SaltSize is the number of bytes in a derivation salt.
const SaltSize = 16

// Salt seasons key derivation so identical passphrases on different
// carriers can produce unrelated seed material.
type Salt [SaltSize]byte

// DefaultSalt is used when the caller supplies no salt. Keeping it fixed
// makes encoding fully deterministic from (payload, key, dimensions) alone,
// at the cost of rainbow-table resistance. Callers wanting per-image salts
// use --random-salt, which persists the salt in a sidecar file.
var DefaultSalt = Salt{'r', 'o', 's', 'e', 'c', 'r', 'y', 'p', 't', '/', 'v', '1', 0x00, 0x00, 0x00, 0x01}

// String returns the salt as lowercase hex.
func (s Salt) String() string {
	return hex.EncodeToString(s[:])
}

// ParseSalt parses a lowercase or uppercase hex string into a Salt.
func ParseSalt(h string) (Salt, error) {
	var s Salt
	raw, err := hex.DecodeString(h)
	if err != nil {
		return s, fmt.Errorf("%w: %v", rcerrors.ErrInvalidSalt, err)
	}
	if len(raw) != SaltSize {
		return s, fmt.Errorf("%w: expected %d bytes, got %d", rcerrors.ErrInvalidSalt, SaltSize, len(raw))
	}
	copy(s[:], raw)
	return s, nil
}

// RandomSalt returns a cryptographically random salt.
func RandomSalt() (Salt, error) {
	var s Salt
	if _, err := rand.Read(s[:]); err != nil {
		return s, fmt.Errorf("generating salt: %w", err)
	}
	return s, nil
}

// Material holds the independent sub-seeds derived from one passphrase.
// Each sub-seed drives exactly one stage of the pipeline, so no stage can
// leak information about another stage's keyed behavior.
type Material struct {
	// NoiseSeed parameterizes the coherent noise field.
	NoiseSeed int64

	// PaletteSeed parameterizes the color mapping.
	PaletteSeed int64

	// EmbedSeed keys the pseudo-random embedding walk.
	EmbedSeed [32]byte

	// AuthKey keys the payload MAC used for checksum validation.
	AuthKey []byte
}

// Argon2id parameters. 64 MiB, single pass, four lanes: the interactive
// profile recommended by the argon2 RFC and used across password tooling.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// Derive stretches the passphrase with argon2id and expands the result
// into the per-stage sub-seeds with HKDF-SHA256. Derivation is
// deterministic: the same passphrase and salt always produce the same
// Material, on every platform. The passphrase is never recoverable from
// the Material.
func Derive(passphrase string, salt Salt) (Material, error) {
	var m Material
	if passphrase == "" {
		return m, rcerrors.ErrInvalidKey
	}

	master := argon2.IDKey([]byte(passphrase), salt[:], argonTime, argonMemory, argonThreads, argonKeyLen)

	noiseSeed, err := expandSeed(master, "rosecrypt/v1 noise")
	if err != nil {
		return m, err
	}
	paletteSeed, err := expandSeed(master, "rosecrypt/v1 palette")
	if err != nil {
		return m, err
	}

	m.NoiseSeed = noiseSeed
	m.PaletteSeed = paletteSeed

	if err := expandInto(master, "rosecrypt/v1 embed", m.EmbedSeed[:]); err != nil {
		return m, err
	}

	m.AuthKey = make([]byte, 32)
	if err := expandInto(master, "rosecrypt/v1 auth", m.AuthKey); err != nil {
		return m, err
	}

	return m, nil
}

// expandSeed derives a single int64 seed for the given context label.
func expandSeed(master []byte, info string) (int64, error) {
	var buf [8]byte
	if err := expandInto(master, info, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

// expandInto fills out with HKDF-expanded bytes bound to the context label.
func expandInto(master []byte, info string, out []byte) error {
	r := hkdf.Expand(sha256.New, master, []byte(info))
	if _, err := io.ReadFull(r, out); err != nil {
		return fmt.Errorf("expanding %q seed: %w", info, err)
	}
	return nil
}
