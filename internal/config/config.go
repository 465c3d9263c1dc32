package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Jira   JiraConfig   `toml:"jira"`
	Git    GitConfig    `toml:"git"`
	Report ReportConfig `toml:"report"`
}

type JiraConfig struct {
	Site        string `toml:"site"`
	RESTPath    string `toml:"rest_path"`
	MaxResults  int    `toml:"max_results"`
	UsernameEnv string `toml:"username_env"`

	// Username comes from the environment variable named by UsernameEnv
	Username string `toml:"-"`
}

type GitConfig struct {
	// Backend is "cli" (git binary) or "go-git" (in-process)
	Backend string `toml:"backend"`
}

type ReportConfig struct {
	ExemptTags []string `toml:"exempt_tags"`
	NoColor    bool     `toml:"no_color"`
}

// ConfigError is a missing credential, bad argument, or invalid setting.
// It is reported with usage and no further detail.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// IsConfigError reports whether err is a ConfigError
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

func DefaultConfig() *Config {
	return &Config{
		Jira: JiraConfig{
			Site:        "https://tickets.puppetlabs.com",
			RESTPath:    "/rest/api/2",
			MaxResults:  1000,
			UsernameEnv: "JIRA_USERNAME",
		},
		Git: GitConfig{
			Backend: "cli",
		},
		Report: ReportConfig{
			ExemptTags: []string{"maint", "doc", "packaging", "unmarked"},
		},
	}
}

// DefaultPath returns the config file location under the user config dir
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "inquisitor.toml"), nil
}

// Load reads the config file at path (or the default location when empty)
// and fills the username from the environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			p = ""
		}
		path = p
	}

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// Defaults only
		default:
			return nil, err
		}
	}

	if cfg.Jira.UsernameEnv != "" {
		if user, ok := lookupEnv(cfg.Jira.UsernameEnv); ok {
			cfg.Jira.Username = strings.TrimSpace(user)
		}
	}

	return cfg, nil
}

// Validate checks the settings a run depends on
func (c *Config) Validate() error {
	if c.Jira.Username == "" {
		return &ConfigError{Msg: fmt.Sprintf("%s environment variable must be set", c.Jira.UsernameEnv)}
	}
	if c.Jira.Site == "" {
		return &ConfigError{Msg: "jira.site must be set"}
	}
	if c.Jira.MaxResults <= 0 {
		return &ConfigError{Msg: fmt.Sprintf("jira.max_results must be positive, got %d", c.Jira.MaxResults)}
	}
	switch c.Git.Backend {
	case "cli", "go-git":
	default:
		return &ConfigError{Msg: fmt.Sprintf("git.backend must be %q or %q, got %q", "cli", "go-git", c.Git.Backend)}
	}
	return nil
}

// SiteURL returns the Jira site without a trailing slash
func (c *Config) SiteURL() string {
	return strings.TrimSuffix(c.Jira.Site, "/")
}
