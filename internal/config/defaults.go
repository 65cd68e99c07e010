package config

import (
	_ "embed"

	"github.com/vovakirdan/lineclear/internal/scenario"
)

//go:embed defaults/generator.yaml
var defaultGeneratorYAML []byte

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Domain:         "tetris",
		ImageSize:      400,
		Difficulty:     string(scenario.DifficultyEasy),
		NumSamples:     10,
		OutputDir:      "data/questions",
		GenerateVideos: true,
		VideoFPS:       10,
		Retries:        3,
		Board: BoardConfig{
			FillRatio:   0.8,
			FillJitter:  0.2,
			ClearPolicy: string(scenario.ClearAny),
			MaxAttempts: scenario.DefaultMaxAttempts,
		},
	}
}
