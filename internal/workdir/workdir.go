// Package workdir resolves where slideswitch keeps its files.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// File names inside the working directory.
const (
	StateFile = "state.toml"
	LogFile   = "slideswitch.log"
)

// Root returns the base directory for slideswitch files:
//
//	$XDG_CONFIG_HOME/slideswitch (or the platform equivalent)
func Root() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	return filepath.Join(dir, "slideswitch"), nil
}

// FilePath returns the full path for a file in the working directory.
func FilePath(filename string) (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}

	return filepath.Join(root, filename), nil
}

// Prep ensures the directory holding path exists.
func Prep(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}
