// Package config defines service configuration and how it is loaded.
//
// Conventions:
// - New returns the defaults; Load layers a YAML file and env vars on top.
// - Errors returned by Load wrap this package's sentinel kinds.
package config

import (
	"path/filepath"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// DataDir is the directory relative dataset file names resolve against.
	DataDir string `koanf:"data_dir"`

	// Dataset file names.
	OlympicsFile   string `koanf:"olympics_file"`
	IPLBallsFile   string `koanf:"ipl_balls_file"`
	IPLMatchesFile string `koanf:"ipl_matches_file"`
	NetflixFile    string `koanf:"netflix_file"`
	HappinessFile  string `koanf:"happiness_file"`
	EnergyFile     string `koanf:"energy_file"`

	// MaxTopN caps every top_n and limit query parameter.
	MaxTopN int `koanf:"max_top_n"`

	// ReadTimeoutMS and WriteTimeoutMS bound HTTP request handling.
	ReadTimeoutMS  int `koanf:"read_timeout_ms"`
	WriteTimeoutMS int `koanf:"write_timeout_ms"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":5000",
		DataDir:        "data",
		OlympicsFile:   "athlete_events.csv",
		IPLBallsFile:   "IPL_Ball_by_Ball_2008_2022.csv",
		IPLMatchesFile: "IPL_Matches_2008_2022.csv",
		NetflixFile:    "netflix_titles.csv",
		HappinessFile:  "world_happiness.csv",
		EnergyFile:     "global_energy.csv",
		MaxTopN:        1000,
		ReadTimeoutMS:  10_000,
		WriteTimeoutMS: 30_000,
	}
}

// Path resolves a dataset file name against DataDir. Absolute names are
// returned unchanged.
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) || c.DataDir == "" {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
