package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TASKRANK_WEIGHT_URGENCY.
const EnvPrefix = "TASKRANK"

// Load layers the global file, then the project file, over the defaults.
// Missing files are not errors; malformed files return an error.
// Files may be JSON or YAML, chosen by extension.
func Load(globalPath, projectPath string) (*Config, error) {
	values := Default().ToMap()

	if globalPath != "" {
		loaded, err := readConfigFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("loading global config: %w", err)
		}
		values = MergeMaps(values, loaded)
	}

	// Project settings win over global ones
	if projectPath != "" {
		loaded, err := readConfigFile(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading project config: %w", err)
		}
		values = MergeMaps(values, loaded)
	}

	cfg, err := Build(values)
	if err != nil {
		return nil, fmt.Errorf("building config: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads configuration from conventional paths and then applies
// TASKRANK_* environment overrides.
// Global: ~/.taskrank/config.json
// Project: .taskrank/config.json (relative to cwd)
func LoadDefault() (*Config, error) {
	globalPath, err := GlobalPath()
	if err != nil {
		return nil, err
	}

	cfg, err := Load(globalPath, ProjectPath())
	if err != nil {
		return nil, err
	}
	return withEnv(cfg)
}

// LoadFile loads a single config file over the defaults and then applies
// TASKRANK_* environment overrides, like LoadDefault. Unlike Load, a
// missing file is an error.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := Load("", path)
	if err != nil {
		return nil, err
	}
	return withEnv(cfg)
}

func withEnv(cfg *Config) (*Config, error) {
	cfg, err := cfg.Apply(envOverrides())
	if err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}
	return cfg, nil
}

// GlobalPath returns the per-user config file location.
func GlobalPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".taskrank", "config.json"), nil
}

// ProjectPath returns the project config file location relative to cwd.
func ProjectPath() string {
	return filepath.Join(".taskrank", "config.json")
}

// readConfigFile reads a config file into a key/value map.
// Missing files yield an empty map.
func readConfigFile(path string) (map[string]any, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
		v.SetConfigType("json")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return v.AllSettings(), nil
}

// envOverrides collects scalar config keys set through the environment.
func envOverrides() map[string]any {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	for key, val := range Default().ToMap() {
		if _, nested := val.(map[string]any); nested {
			continue
		}
		_ = v.BindEnv(key)
	}
	return v.AllSettings()
}
