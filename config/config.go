// Package config loads nextest settings from YAML files.
//
// Settings are layered: built-in defaults, then the user file
// (~/.config/nextest/config.yaml), then the project file
// (./.config/nextest.yaml). A value set in a later layer replaces the
// earlier one; unset values are inherited.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var (
	osUserHomeDir = os.UserHomeDir
	osGetwd       = os.Getwd
)

const (
	userConfigDir     = ".config/nextest"
	userConfigFile    = "config.yaml"
	projectConfigDir  = ".config"
	projectConfigFile = "nextest.yaml"
)

// Config holds all settings.
type Config struct {
	Runner RunnerConfig `yaml:"runner"`
	Remap  RemapConfig  `yaml:"remap"`
	List   ListConfig   `yaml:"list"`
}

// RunnerConfig holds the wrapper command lines binaries run through, per
// build platform.
type RunnerConfig struct {
	Host   string `yaml:"host,omitempty"`
	Target string `yaml:"target,omitempty"`
}

// RemapConfig holds where build outputs live at run time.
type RemapConfig struct {
	// Workspace root at run time
	Workspace string `yaml:"workspace,omitempty"`
	// Directory all test binaries were moved to
	BinariesDir string `yaml:"binaries-dir,omitempty"`
}

// ListConfig holds test listing settings.
type ListConfig struct {
	// Number of binaries listed concurrently
	Jobs int `yaml:"jobs,omitempty"`
	// Output format: human, json or json-pretty
	Format string `yaml:"format,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		List: ListConfig{
			Jobs:   runtime.NumCPU(),
			Format: "human",
		},
	}
}

// Load returns the layered configuration. Missing files are skipped;
// files that exist but can't be parsed are an error.
func Load(logger zerolog.Logger) (Config, error) {
	config := Default()

	for _, layer := range []struct {
		name string
		path func() (string, error)
	}{
		{name: "user", path: getUserConfigPath},
		{name: "project", path: getProjectConfigPath},
	} {
		path, err := layer.path()
		if err != nil {
			logger.Warn().Err(err).Str("layer", layer.name).Msg("Could not determine config path")
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		overlay, err := LoadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error loading %s config from %s: %w", layer.name, path, err)
		}
		logger.Debug().Str("layer", layer.name).Str("path", path).Msg("Loaded config")
		config = merge(config, overlay)
	}

	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, userConfigFile), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, projectConfigFile), nil
}

// LoadFile reads a single config file. Unknown keys are rejected.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var config Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if config.List.Jobs < 0 {
		return Config{}, fmt.Errorf("list.jobs must not be negative, got %d", config.List.Jobs)
	}
	return config, nil
}

// merge overlays the values set in overlay onto base.
func merge(base, overlay Config) Config {
	merged := base

	if overlay.Runner.Host != "" {
		merged.Runner.Host = overlay.Runner.Host
	}
	if overlay.Runner.Target != "" {
		merged.Runner.Target = overlay.Runner.Target
	}
	if overlay.Remap.Workspace != "" {
		merged.Remap.Workspace = overlay.Remap.Workspace
	}
	if overlay.Remap.BinariesDir != "" {
		merged.Remap.BinariesDir = overlay.Remap.BinariesDir
	}
	if overlay.List.Jobs != 0 {
		merged.List.Jobs = overlay.List.Jobs
	}
	if overlay.List.Format != "" {
		merged.List.Format = overlay.List.Format
	}

	return merged
}
