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

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SCORECARD_CONFIG is set
//  3. env (prefix SCORECARD_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SCORECARD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SCORECARD_ADDR, SCORECARD_CACHE_DIR, ...
	// Map env keys like SCORECARD_RENDER_TIMEOUT -> render_timeout (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SCORECARD_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "scorecard_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.CacheDir == "":
		return fmt.Errorf("%w: cache_dir must not be empty", ErrInvalidConfig)
	case c.RenderConcurrency < 1:
		return fmt.Errorf("%w: render_concurrency must be at least 1", ErrInvalidConfig)
	case c.RenderTimeout <= 0:
		return fmt.Errorf("%w: render_timeout must be positive", ErrInvalidConfig)
	case c.AdmissionWait <= 0:
		return fmt.Errorf("%w: admission_wait must be positive", ErrInvalidConfig)
	case c.ImageWidth < 400:
		return fmt.Errorf("%w: image_width too small for the scoreboard columns", ErrInvalidConfig)
	case c.MainItemSlots != 6 && c.MainItemSlots != 7:
		return fmt.Errorf("%w: main_item_slots must be 6 or 7", ErrInvalidConfig)
	}
	return nil
}
