package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

var (
	homePath       string
	configHomePath string
	dataHomePath   string
	stateHomePath  string
)

type Config struct {
	// Resize backend to use: auto, sips, magick, go or command
	Backend string `yaml:"backend,omitempty" json:"backend,omitempty"`
	// Custom command to resize images, e.g.
	// "magick {{src}} -resize {{width}}x{{height}}! {{dst}}"
	ResizeCommand string `yaml:"resizeCommand,omitempty" json:"resizeCommand,omitempty"`
	// Additional icon variants appended to the built-in table
	ExtraIcons []Icon `yaml:"extraIcons,omitempty" json:"extraIcons,omitempty"`
}

type Icon struct {
	Size   float64 `yaml:"size" json:"size"`     // point size
	Scale  float64 `yaml:"scale" json:"scale"`   // display scale factor
	Prefix string  `yaml:"prefix" json:"prefix"` // filename prefix
	Idiom  string  `yaml:"idiom" json:"idiom"`   // device idiom
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
}

// Load loads the configuration from the config file.
// It searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/iconset/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/iconset/config.yml
// If no config file is found, it returns an empty Config struct.
func Load(profile string) (*Config, error) {
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	cfg := &Config{}
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			configPath := basePath + ext
			if b, err := os.ReadFile(configPath); err == nil {
				if err := yaml.Unmarshal(b, cfg); err != nil {
					return nil, fmt.Errorf("failed to unmarshal config: %w", err)
				}
				return cfg, nil
			}
		}
	}
	// If no config file is found, return an empty config
	return cfg, nil
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, "iconset")
	} else {
		configHomePath = filepath.Join(homePath, ".config", "iconset")
	}
	return configHomePath
}

// DataHomePath returns the path to the data home directory.
func DataHomePath() string {
	if dataHomePath != "" {
		return dataHomePath
	}
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		dataHomePath = filepath.Join(v, "iconset")
	} else {
		dataHomePath = filepath.Join(homePath, ".local", "share", "iconset")
	}
	return dataHomePath
}

// StateHomePath returns the path to the state home directory. Run logs and
// error dumps are written here.
func StateHomePath() string {
	if stateHomePath != "" {
		return stateHomePath
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, "iconset")
	} else {
		stateHomePath = filepath.Join(homePath, ".local", "state", "iconset")
	}
	return stateHomePath
}
