package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	EnvPrefix = "DARA_"
	EnvConfig = "DARA_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DARA_CONFIG is set
//  3. env (prefix DARA_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// DARA_MAX_TOP_N -> max_top_n. Underscores are kept to match the flat
	// koanf tags; DARA_CONFIG itself is not a key.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		if s == EnvConfig {
			return ""
		}
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot be served.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxTopN <= 0:
		return fmt.Errorf("%w: max_top_n must be positive", ErrInvalidConfig)
	case c.ReadTimeoutMS <= 0 || c.WriteTimeoutMS <= 0:
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	files := []struct{ key, name string }{
		{"olympics_file", c.OlympicsFile},
		{"ipl_balls_file", c.IPLBallsFile},
		{"ipl_matches_file", c.IPLMatchesFile},
		{"netflix_file", c.NetflixFile},
		{"happiness_file", c.HappinessFile},
		{"energy_file", c.EnergyFile},
	}
	for _, f := range files {
		if f.name == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, f.key)
		}
	}
	return nil
}
