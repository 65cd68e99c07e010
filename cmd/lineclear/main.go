// lineclear generates line-clearing Tetris puzzles: an initial board with a
// landed piece, the question to ask about it and the resolved answer as
// still frames, an animation and machine-readable metadata.
//
// Usage:
//
//	lineclear generate           - Generate a batch of tasks
//	lineclear show               - Print one scenario in the terminal
//	lineclear preview            - Animated scenario preview
//	lineclear history            - List generated tasks
//	lineclear list               - List artifacts and difficulties
//	lineclear serve              - Start SSH server for remote previews
//
// Global flags:
//
//	--seed <value>       - Base RNG seed (0 = config value, then time)
//	--config <path>      - Generator config YAML
//	--db <path>          - Task index database (default: ~/.lineclear/tasks.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lineclear/internal/config"
	"github.com/vovakirdan/lineclear/internal/scenario"
	"github.com/vovakirdan/lineclear/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lineclear",
	Short: "lineclear - Tetris line-clear puzzle generator",
	Long: `lineclear builds small Tetris puzzles: a pre-filled board with one piece
about to lock, plus the answer to "which lines clear, and what is left?".

Available commands:
  generate - Write a batch of tasks to disk
  show     - Print one scenario and its resolution
  preview  - Animated scenario preview in the terminal
  history  - Browse the index of generated tasks
  list     - Show artifacts, difficulties and prompt kinds
  serve    - Start SSH server for remote previews

Examples:
  lineclear generate --num-samples 50 --difficulty hard
  lineclear show --seed 42
  lineclear preview --difficulty medium
  lineclear history --tui
  lineclear serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Base RNG seed (0 = config value, then time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to generator config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to task index database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger returns the stderr logger configured by --log-level.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig loads the generator config and applies the global seed.
// A zero seed everywhere falls back to the current time.
func loadConfig() (config.GeneratorConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// applyDifficulty applies a difficulty preset when name is set.
func applyDifficulty(cfg *config.GeneratorConfig, name string) error {
	if name == "" {
		return nil
	}
	d, err := scenario.ParseDifficulty(name)
	if err != nil {
		return err
	}
	config.ApplyPreset(cfg, d)
	return nil
}

// fail prints the error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
