package configs

import (
	"fmt"
	"time"
)

// SaltFile is the sidecar written next to a carrier encoded with a random
// salt. Decode needs the same salt to re-derive the key material, and the
// salt is not secret, so persisting it beside the image is safe.
type SaltFile struct {
	Salt      string    `toml:"salt"` // hex
	CreatedAt time.Time `toml:"created_at"`
	Tool      string    `toml:"tool"`
}

// SaltSidecarPath returns the sidecar path for a carrier file.
func SaltSidecarPath(carrierPath string) string {
	return carrierPath + ".salt.toml"
}

// SaveSaltFile writes the salt sidecar for a carrier.
func SaveSaltFile(carrierPath, saltHex string) error {
	sidecar := SaltFile{
		Salt:      saltHex,
		CreatedAt: time.Now().UTC(),
		Tool:      "rosecrypt",
	}
	if err := SaveTOML(SaltSidecarPath(carrierPath), &sidecar); err != nil {
		return fmt.Errorf("failed to save salt sidecar: %w", err)
	}
	return nil
}

// LoadSaltFile reads the salt sidecar for a carrier. Missing sidecars
// surface as the underlying fs.ErrNotExist so callers can fall back to
// the default salt.
func LoadSaltFile(carrierPath string) (string, error) {
	var sidecar SaltFile
	if err := LoadTOML(SaltSidecarPath(carrierPath), &sidecar); err != nil {
		return "", err
	}
	return sidecar.Salt, nil
}
