// Package project locates a voltcheck project and loads its configuration
// and device catalog.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigDirName is the name of the voltcheck configuration directory.
const ConfigDirName = ".voltcheck"

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.json"

// ErrNoProjectRoot is returned when .voltcheck/config.json is not found.
var ErrNoProjectRoot = errors.New(".voltcheck/config.json not found in this directory or any parent")

// FindRoot walks up from the current working directory until it finds .voltcheck/config.json.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from the given directory until it finds .voltcheck/config.json.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		configPath := filepath.Join(dir, ConfigDirName, ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}
