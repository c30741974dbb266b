package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Theme is auto, dark or light.
	Theme string `yaml:"theme"`
	// Accent colours the selected row; empty uses the theme accent.
	Accent    string `yaml:"accent"`
	AltScreen *bool  `yaml:"alt_screen"`
	LogFile   string `yaml:"log_file"`
}

func Default() Config {
	alt := true
	return Config{
		Theme:     "auto",
		AltScreen: &alt,
	}
}

// UseAltScreen reports whether the program should take over the alternate screen.
func (c Config) UseAltScreen() bool {
	return c.AltScreen == nil || *c.AltScreen
}

func Path() (string, error) {
	// XDG
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "dbexplorer", "config.yml"), nil
}

func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile overlays the YAML file at path onto Default. A missing file is
// not an error.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	var user Config
	if err := yaml.Unmarshal(data, &user); err != nil {
		return cfg, err
	}
	merge := cfg
	if user.Theme != "" {
		merge.Theme = user.Theme
	}
	if user.Accent != "" {
		merge.Accent = user.Accent
	}
	if user.AltScreen != nil {
		merge.AltScreen = user.AltScreen
	}
	if user.LogFile != "" {
		merge.LogFile = ExpandUser(user.LogFile)
	}
	return merge, nil
}

// ExpandUser expands a path starting with ~ to the user's home.
func ExpandUser(p string) string {
	if p == "" {
		return p
	}
	if p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}
