// Package config loads the editor settings from
// $HOME/.config/kyte/settings.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type (
	// Settings are the plain values consumed by the editor. None of them
	// affect highlighting correctness.
	Settings struct {
		Number         bool   `toml:"number"`
		NumberLen      int    `toml:"numberlen"`
		MessageTimeout int    `toml:"message-timeout"`
		TabStop        int    `toml:"tab-stop"`
		Separator      string `toml:"separator"`
	}

	file struct {
		Settings Settings `toml:"settings"`
	}
)

// Default returns the settings used when no config file exists.
func Default() Settings {
	return Settings{
		Number:         true,
		NumberLen:      4,
		MessageTimeout: 5,
		TabStop:        4,
		Separator:      "|",
	}
}

// DefaultPath returns the settings file location, empty when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "kyte", "settings.toml")
}

// Load reads the settings file at path. A missing file is not an error,
// the defaults apply; a malformed file is.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	f := file{Settings: s}
	if _, err := toml.DecodeFile(path, &f); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("config: error reading %s: %w", path, err)
	}
	s = f.Settings

	if s.TabStop < 1 {
		s.TabStop = Default().TabStop
	}
	if s.NumberLen < 1 {
		s.NumberLen = Default().NumberLen
	}
	if s.MessageTimeout < 1 {
		s.MessageTimeout = Default().MessageTimeout
	}
	return s, nil
}
