package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the per-application XDG directories.
const AppName = "amanah"

// ConfigDir returns the XDG-compliant config directory for amanah
// Typically ~/.config/amanah/ on Linux
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ConfigPath returns the full path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json5")
}

// DefaultDBPath returns where the credential database lives unless
// overridden. It sits next to the config file.
func DefaultDBPath() string {
	return filepath.Join(ConfigDir(), "passwords.db")
}

// DataDir returns the XDG-compliant data directory for amanah
// Typically ~/.local/share/amanah/ on Linux (file keyring backend)
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
