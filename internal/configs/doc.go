// Package configs manages user configuration and salt sidecars for
// rosecrypt.
//
// Configuration is stored in TOML format:
//
//   - User settings: <UserConfigDir>/rosecrypt/config.toml (defaults,
//     install ID)
//   - Salt sidecars: <carrier>.salt.toml next to carriers encoded with
//     --random-salt
//
// # User Settings
//
// The settings file stores the default noise kind, the default
// compression choice, and an install ID generated on first use. The
// install ID only tags history entries; it carries no key material.
//
// # Salt Sidecars
//
// By default rosecrypt derives keys with a fixed, documented salt so
// encoding stays deterministic. When the user asks for a random salt,
// decode has to learn that salt from somewhere: the sidecar file is that
// somewhere. Salts are not secret; only the passphrase is.
//
// # Environment Overrides
//
// ROSECRYPT_KEY, ROSECRYPT_NOISE, and ROSECRYPT_SALT override their
// corresponding flags, letting scripts keep passphrases out of argv and
// shell history.
//
// # Settings Paths
//
// Global paths are initialized at startup in UserRosecryptSettings:
// the config directory (os.UserConfigDir) and the state directory
// (XDG_STATE_HOME, falling back to ~/.local/state), both suffixed with
// "rosecrypt". Tests override UserRosecryptSettings to point at temp
// directories.
package configs
