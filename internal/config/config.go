// Package config provides YAML-based generator configuration loading and
// difficulty presets for the puzzle generator.
package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/lineclear/internal/scenario"
)

// GeneratorConfig contains every setting of a generation run.
type GeneratorConfig struct {
	Domain         string      `yaml:"domain"`
	ImageSize      int         `yaml:"image_size"` // Square frame edge in pixels
	Difficulty     string      `yaml:"difficulty"`
	Seed           int64       `yaml:"seed"` // 0 = pick one at startup
	NumSamples     int         `yaml:"num_samples"`
	OutputDir      string      `yaml:"output_dir"`
	GenerateVideos bool        `yaml:"generate_videos"`
	VideoFPS       int         `yaml:"video_fps"`
	Workers        int         `yaml:"workers"` // 0 = one per CPU
	Retries        int         `yaml:"retries"` // Extra seeds tried per failed sample
	Board          BoardConfig `yaml:"board"`
}

// BoardConfig defines how the pre-filled terrain and the piece are sampled.
type BoardConfig struct {
	MapSize       int     `yaml:"map_size"`        // 0 = difficulty default
	PreFilledRows int     `yaml:"pre_filled_rows"` // 0 = difficulty default
	FillRatio     float64 `yaml:"fill_ratio"`
	FillJitter    float64 `yaml:"fill_jitter"`
	ClearPolicy   string  `yaml:"clear_policy"` // "any", "always", "never" or "mixed"
	MaxAttempts   int     `yaml:"max_attempts"`
}

// ClearMixed requires a clear for 7 of every 10 task indices and forbids
// one for the rest.
const ClearMixed = "mixed"

// PolicyFor resolves the clear policy of the task at the given batch index.
func (b BoardConfig) PolicyFor(index int) (scenario.ClearPolicy, error) {
	if strings.EqualFold(strings.TrimSpace(b.ClearPolicy), ClearMixed) {
		if index%10 < 7 {
			return scenario.ClearAlways, nil
		}
		return scenario.ClearNever, nil
	}
	return scenario.ParseClearPolicy(b.ClearPolicy)
}

// ScenarioConfig returns the core config for the task at the given batch
// index, generated from the given seed.
func (c GeneratorConfig) ScenarioConfig(index int, seed int64) (scenario.Config, error) {
	d, err := scenario.ParseDifficulty(c.Difficulty)
	if err != nil {
		return scenario.Config{}, err
	}
	policy, err := c.Board.PolicyFor(index)
	if err != nil {
		return scenario.Config{}, err
	}
	return scenario.Config{
		Difficulty:    d,
		MapSize:       c.Board.MapSize,
		Seed:          seed,
		PreFilledRows: c.Board.PreFilledRows,
		FillRatio:     c.Board.FillRatio,
		FillJitter:    c.Board.FillJitter,
		ClearPolicy:   policy,
		MaxAttempts:   c.Board.MaxAttempts,
	}, nil
}

// Validate checks the run settings and the board settings.
func (c GeneratorConfig) Validate() error {
	switch {
	case strings.TrimSpace(c.Domain) == "":
		return fmt.Errorf("config: domain must not be empty")
	case c.ImageSize < 40:
		return fmt.Errorf("config: image_size %d is below 40 pixels", c.ImageSize)
	case c.NumSamples < 1:
		return fmt.Errorf("config: num_samples must be at least 1, got %d", c.NumSamples)
	case c.GenerateVideos && c.VideoFPS < 1:
		return fmt.Errorf("config: video_fps must be positive, got %d", c.VideoFPS)
	case c.Workers < 0:
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	case c.Retries < 0:
		return fmt.Errorf("config: retries must not be negative, got %d", c.Retries)
	}

	sc, err := c.ScenarioConfig(0, c.Seed)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// TaskID returns the identifier of the task at the given batch index,
// e.g. "tetris_0007".
func (c GeneratorConfig) TaskID(index int) string {
	return fmt.Sprintf("%s_%04d", c.Domain, index)
}
