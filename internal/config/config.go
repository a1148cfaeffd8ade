package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level portfolio configuration.
type Config struct {
	Projects []Project `mapstructure:"projects"`
	Reports  Reports   `mapstructure:"reports"`
}

// Project is a single configured portfolio entry. The position of a
// project in the Projects slice is its identity: local and remote data
// are joined back to it by that index.
type Project struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Path        string `mapstructure:"path"`
	GitHubRepo  string `mapstructure:"github_repo"`
	Pillar      string `mapstructure:"pillar"`
	Priority    string `mapstructure:"priority"`
}

// Reports holds report generation preferences.
type Reports struct {
	CommitLookbackDays int    `mapstructure:"commit_lookback_days"`
	DateFormat         string `mapstructure:"date_format"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default
// locations) and returns a Config with defaults applied. Unlike most
// settings files, the portfolio file is the entire input to the tool,
// so a missing or unreadable file is an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("reports.commit_lookback_days", DefaultLookbackDays)
	v.SetDefault("reports.date_format", DefaultDateFormat)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("portfolio")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading portfolio config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing portfolio config: %w", err)
	}

	// Normalize categorical fields and expand local paths.
	for i := range cfg.Projects {
		p := &cfg.Projects[i]
		p.Path = expandPath(p.Path)
		p.Pillar = strings.ToLower(strings.TrimSpace(p.Pillar))
		p.Priority = strings.ToLower(strings.TrimSpace(p.Priority))
		if p.Pillar == "" {
			p.Pillar = "unknown"
		}
		if p.Priority == "" {
			p.Priority = "unknown"
		}
	}

	return &cfg, nil
}

// ParseRepo splits an "owner/name" repository identifier into its two
// parts. Anything else is rejected so a malformed entry can be skipped
// for remote lookups without aborting the run.
func ParseRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid github repo format: %q (expected \"owner/name\")", repo)
	}
	return parts[0], parts[1], nil
}
