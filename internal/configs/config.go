package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Settings are the user's persisted defaults.
type Settings struct {
	// InstallID identifies this installation in history entries. It is
	// generated on first use and never changes.
	InstallID string `toml:"install_id"`

	Defaults Defaults `toml:"defaults"`
}

// Defaults configure encode behavior when flags are omitted.
type Defaults struct {
	// Noise is the default noise kind name ("perlin" or "simplex").
	Noise string `toml:"noise"`

	// Compress enables zstd payload compression by default.
	Compress bool `toml:"compress"`
}

func settingsPath() string {
	return filepath.Join(UserRosecryptSettings.ConfigDir, "config.toml")
}

// LoadSettings loads the user settings, returning built-in defaults when
// no config file exists yet.
func LoadSettings() (*Settings, error) {
	settings := &Settings{
		Defaults: Defaults{Noise: "perlin"},
	}

	path := settingsPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	if err := LoadTOML(path, settings); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// SaveSettings persists the user settings.
func SaveSettings(settings *Settings) error {
	if err := SaveTOML(settingsPath(), settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// EnsureSettings loads the settings and assigns the install ID on first
// use.
func EnsureSettings() (*Settings, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}

	if settings.InstallID == "" {
		settings.InstallID = uuid.New().String()
		if err := SaveSettings(settings); err != nil {
			return nil, err
		}
	}
	return settings, nil
}
