// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDatabasePath is used when database.path is not configured.
const DefaultDatabasePath = "$HOME/.local/share/fintrack/fintrack.db"

// ExpandPath expands a leading ~ and $VAR style environment variables.
// The special SQLite path ":memory:" is returned unchanged.
func ExpandPath(path string) string {
	if path == "" || path == ":memory:" {
		return path
	}

	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
