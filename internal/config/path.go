// Package config resolves user-supplied paths and settings for the CLI.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading tilde against the user's home directory
// and then substitutes $VAR style environment references. When the home
// directory cannot be determined the tilde is left as-is.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if home, err := os.UserHomeDir(); err == nil {
		switch {
		case path == "~":
			path = home
		case strings.HasPrefix(path, "~/"):
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
