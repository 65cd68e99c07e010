package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lineclear/internal/core"
	"github.com/vovakirdan/lineclear/internal/platform/tui"
	"github.com/vovakirdan/lineclear/internal/storage"
)

var flagFPS int

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Animated scenario preview",
	Long: `Open an animated preview of the scenario generated from the seed.

Controls:
  Space/P    - Pause
  Right/L    - Step one frame
  R          - Replay
  N / Shift+N - Next / previous seed
  D/Tab      - Next difficulty
  H          - Browse generated tasks
  Ctrl+S     - Save a text screenshot
  ?          - All keys
  Q/Ctrl+C   - Quit

Examples:
  lineclear preview
  lineclear preview --seed 42 --difficulty hard
  lineclear preview --fps 20`,
	Run: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, medium, hard")
	previewCmd.Flags().IntVar(&flagMapSize, "map-size", 0, "Board edge length (0 = difficulty default)")
	previewCmd.Flags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Animation frames per second")
}

func runPreview(_ *cobra.Command, _ []string) {
	gen, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	if err := applyDifficulty(&gen, flagDifficulty); err != nil {
		fail("%v", err)
	}
	if flagMapSize > 0 {
		gen.Board.MapSize = flagMapSize
	}
	if err := gen.Validate(); err != nil {
		fail("%v", err)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     gen.Seed,
	}

	// Open the task index for the history view
	var source tui.TaskSource
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open task index: %v\n", err)
		// Continue without history - the preview still works
	} else {
		source = store
	}

	runErr := tui.RunSession(gen, cfg, source)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running preview: %v", runErr)
	}
}
