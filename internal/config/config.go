// Package config handles loading checker configuration from files.
//
// Configuration can be specified in a JSON file named mustuse.json or
// .mustuserc. The config file is searched for in the current directory and
// parent directories.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config represents the configuration file structure.
// All fields are optional and will use default values if not specified.
type Config struct {
	// DisabledRules lists diagnostic rules that should not be reported,
	// e.g. "discarded_must_use".
	DisabledRules []string `json:"disabledRules,omitempty"`
}

// ConfigFileNames are the names searched for config files, in order of preference.
var ConfigFileNames = []string{
	"mustuse.json",
	".mustuserc",
	".mustuserc.json",
}

// Load searches for a config file starting from the given directory
// and walking up to parent directories. Returns nil if no config file is found.
func Load(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := LoadFile(path)
				return cfg, path, err
			}
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, no config found
			return nil, "", nil
		}
		dir = parent
	}
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Merge combines the config file's disabled rules with rules disabled on
// the command line. CLI rules extend the config file's set.
func (c *Config) Merge(cliDisabledRules []string) []string {
	seen := make(map[string]bool)
	var rules []string
	for _, rule := range append(append([]string{}, c.DisabledRules...), cliDisabledRules...) {
		if !seen[rule] {
			seen[rule] = true
			rules = append(rules, rule)
		}
	}
	return rules
}
