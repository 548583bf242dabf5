// Package config loads benchmark settings from an optional TOML file.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable of a benchmark sweep. Values from the file
// sit between the built-in defaults and any command-line flags, which win.
type Config struct {
	// Tool is the analysis executable: a path, or a name looked up on PATH.
	Tool string `toml:"tool"`
	// SamplesDir is the directory holding the sample corpus.
	SamplesDir string `toml:"samples_dir"`
	// Extension filters which corpus files are benchmarked.
	Extension string `toml:"extension"`
	// TimeoutSeconds bounds a single tool run.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// CooldownSeconds is the pause between the serial and parallel run of
	// the same sample.
	CooldownSeconds float64 `toml:"cooldown_seconds"`
	// TimeLabel is the phrase preceding the run-time value in the tool's
	// output.
	TimeLabel string `toml:"time_label"`
	// SpeedLabel is the phrase preceding the throughput value.
	SpeedLabel string `toml:"speed_label"`
}

// Default returns the built-in settings: a flac corpus, a five-minute run
// timeout, a two-second cooldown, and the analysis tool's stock output
// labels.
func Default() Config {
	return Config{
		Extension:       ".flac",
		TimeoutSeconds:  300,
		CooldownSeconds: 2,
		TimeLabel:       "运行时间",
		SpeedLabel:      "处理速度",
	}
}

// Load decodes the TOML file at path over the defaults. An empty path
// returns the defaults untouched; a path that cannot be read is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	return cfg, nil
}

// Timeout returns the per-run timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Cooldown returns the inter-run pause as a duration.
func (c Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds * float64(time.Second))
}
