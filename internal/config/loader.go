package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read by Load.
const (
	EnvPrefix     = "RADAR_"
	EnvConfigFile = "RADAR_CONFIG"
	DotEnvFile    = ".env"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if RADAR_CONFIG is set
//  3. env (prefix RADAR_), including values from a .env file in the working
//     directory; variables already set win over .env entries
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, DotEnvFile, err)
	}

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	// RADAR_CONFIG itself is not a setting.
	k.Delete("config")

	cfg := New()
	// Decoding into a non-empty slice overwrites elements in place without
	// truncating, so lists start empty and fall back to the defaults.
	defaultTicks, defaultBuckets := cfg.Ticks, cfg.MetricsBuckets
	cfg.Ticks, cfg.MetricsBuckets = nil, nil
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if cfg.Ticks == nil {
		cfg.Ticks = defaultTicks
	}
	if cfg.MetricsBuckets == nil {
		cfg.MetricsBuckets = defaultBuckets
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Settings given in the environment as comma-separated lists or as
// comma-separated name=value pairs.
const mapKey = "metrics_labels"

var listKeys = map[string]bool{"ticks": true, "metrics_buckets": true} //nolint:gochecknoglobals // fixed key set

// envValue maps RADAR_OUTPUT_DIR to output_dir, keeping underscores to match
// the flat koanf tags. It splits list settings such as RADAR_TICKS=50,100
// and pair settings such as RADAR_METRICS_LABELS=class=7b,term=1. An empty
// list or pair variable is skipped so the defaults stay in place.
func envValue(key, value string) (string, interface{}) {
	key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
	if !listKeys[key] && key != mapKey {
		return key, value
	}
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	parts := strings.Split(value, ",")
	if key == mapKey {
		pairs := make(map[string]interface{}, len(parts))
		for _, p := range parts {
			name, val, _ := strings.Cut(p, "=")
			pairs[strings.TrimSpace(name)] = strings.TrimSpace(val)
		}
		return key, pairs
	}
	items := make([]interface{}, len(parts))
	for i, p := range parts {
		items[i] = strings.TrimSpace(p)
	}
	return key, items
}
