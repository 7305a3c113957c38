// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDBPath is the database location used when database.path is not
// configured. Callers must run the value through ExpandPath.
const DefaultDBPath = "$HOME/.local/share/kharcha/kharcha.db"

// DefaultModelPath is the classifier artifact location used when model.path
// is not configured. Callers must run the value through ExpandPath.
const DefaultModelPath = "$HOME/.local/share/kharcha/model.json"

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}
