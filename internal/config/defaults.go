// Package config provides configuration loading and defaults for portfolio.
package config

// DefaultConfigDir is the default location for portfolio configuration.
const DefaultConfigDir = "~/.config/portfolio"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "portfolio.yaml"

// DefaultLookbackDays is the default commit lookback window for remote
// repository queries.
const DefaultLookbackDays = 90

// DefaultDateFormat is the default Go layout used when rendering report
// dates.
const DefaultDateFormat = "2006-01-02"
