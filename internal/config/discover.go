// internal/config/discover.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfig names the environment variable that points at a config file.
const EnvConfig = "TAKEOUTSORT_CONFIG"

// configDir returns $XDG_CONFIG_HOME/takeoutsort, falling back to ~/.config.
func configDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "takeoutsort")
}

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// DefaultHistoryPath returns the default history database path.
func DefaultHistoryPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./takeoutsort.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "takeoutsort", "history.db")
}

// ErrNotFound indicates no config file exists in any searched location.
type ErrNotFound struct {
	Paths []string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("config not found, checked: %s", formatPaths(e.Paths))
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. TAKEOUTSORT_CONFIG environment variable
//  2. ./takeoutsort.toml (current directory)
//  3. $XDG_CONFIG_HOME/takeoutsort/config.toml
//  4. /etc/takeoutsort/config.toml
func Discover() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfig, envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./takeoutsort.toml",
		DefaultPath(),
		"/etc/takeoutsort/config.toml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", &ErrNotFound{Paths: paths}
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

func formatPaths(paths []string) string {
	return strings.Join(paths, ", ")
}
