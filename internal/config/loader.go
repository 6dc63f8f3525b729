package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".qualscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// WikiConfig is one named wiki endpoint in the configuration file.
type WikiConfig struct {
	// APIURL is the action API endpoint of this wiki.
	APIURL string `yaml:"api_url"`

	// UserAgent overrides the default User-Agent for this wiki.
	UserAgent string `yaml:"user_agent"`
}

// File is the on-disk configuration file structure.
//
// Example:
//
//	wikis:
//	  arwiki:
//	    api_url: https://ar.wikipedia.org/w/api.php
//	  test:
//	    api_url: https://test.wikipedia.org/w/api.php
//	    user_agent: qualscan-staging/1.0
type File struct {
	// Wikis maps profile names to wiki endpoints.
	Wikis map[string]WikiConfig `yaml:"wikis"`
}

// LoadConfigFile loads wiki profiles from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Wikis == nil {
		cf.Wikis = make(map[string]WikiConfig)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .qualscan in the current directory
// 3. Look for .qualscan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
