package configs

import (
	"log"
	"os"
	"path/filepath"
)

type UserSettings struct {
	// ConfigDir holds config.toml with user defaults.
	ConfigDir string

	// StateDir holds the operation history log.
	StateDir string
}

var UserRosecryptSettings *UserSettings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("error getting home directory: %s", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}

	// These paths never depend on the working directory, so it is ok to
	// resolve them once here.
	UserRosecryptSettings = &UserSettings{
		ConfigDir: filepath.Join(configDir, "rosecrypt"),
		StateDir:  filepath.Join(stateDir, "rosecrypt"),
	}
}
