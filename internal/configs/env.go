package configs

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides are environment-variable fallbacks for common flags, so
// scripts can avoid putting passphrases in argv.
type EnvOverrides struct {
	// Key is the passphrase (ROSECRYPT_KEY). Used when --key is absent.
	Key string `env:"ROSECRYPT_KEY"`

	// Noise overrides the default noise kind (ROSECRYPT_NOISE).
	Noise string `env:"ROSECRYPT_NOISE"`

	// Salt is a hex salt override (ROSECRYPT_SALT).
	Salt string `env:"ROSECRYPT_SALT"`
}

// LoadEnv parses the ROSECRYPT_* environment variables.
func LoadEnv() (*EnvOverrides, error) {
	overrides := &EnvOverrides{}
	if err := env.Parse(overrides); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return overrides, nil
}
