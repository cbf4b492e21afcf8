// Package config reads the dashboard and publishing settings through viper.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ to the home directory and substitutes
// $VAR references. Paths that cannot be expanded are returned as given.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	return os.ExpandEnv(expandHome(path))
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != filepath.Separator) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
