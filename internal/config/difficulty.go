package config

import "github.com/vovakirdan/lineclear/internal/scenario"

// ApplyPreset modifies the config based on a difficulty preset.
// Size overrides are reset so the difficulty's own board size and
// pre-filled row count apply.
func ApplyPreset(cfg *GeneratorConfig, d scenario.Difficulty) {
	cfg.Difficulty = string(d)
	cfg.Board.MapSize = 0
	cfg.Board.PreFilledRows = 0

	// Adjust sampling based on difficulty
	switch d {
	case scenario.DifficultyEasy:
		cfg.Board.FillRatio = 0.8
		cfg.Board.FillJitter = 0.2
	case scenario.DifficultyMedium:
		cfg.Board.FillRatio = 0.8
		cfg.Board.FillJitter = 0.15
	case scenario.DifficultyHard:
		cfg.Board.FillRatio = 0.85
		cfg.Board.FillJitter = 0.1
	}
}

// Preset returns the default config with the difficulty preset applied.
func Preset(d scenario.Difficulty) GeneratorConfig {
	cfg := DefaultGeneratorConfig()
	ApplyPreset(&cfg, d)
	return cfg
}
