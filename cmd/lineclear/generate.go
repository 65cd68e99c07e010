package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lineclear/internal/batch"
	"github.com/vovakirdan/lineclear/internal/config"
	"github.com/vovakirdan/lineclear/internal/storage"
	"github.com/vovakirdan/lineclear/internal/writer"
)

var (
	flagNumSamples  int
	flagOutput      string
	flagDifficulty  string
	flagMapSize     int
	flagNoVideos    bool
	flagWorkers     int
	flagClearPolicy string
	flagImageSize   int
	flagRetries     int
	flagNoIndex     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a batch of tasks",
	Long: `Generate tasks and write each one to <output>/<domain>_task/<task_id>/:

  first_frame.png   initial board with the landed piece
  final_frame.png   board after every clear
  prompt.txt        the question
  ground_truth.gif  animated resolution (unless --no-videos)
  metadata.yaml     parameters, boards and resolution

Task i is generated from seed base+i, so a batch is reproducible from its
base seed. Written tasks are recorded in the task index (see --db).

Clear policies:
  any     - accept whatever the seed produces
  always  - at least one line clears
  never   - no line clears
  mixed   - 7 of every 10 tasks clear a line

Examples:
  lineclear generate
  lineclear generate --num-samples 100 --difficulty hard --seed 42
  lineclear generate --map-size 8 --clear-policy always --no-videos
  lineclear generate --config ./generator.yaml --output ./data`,
	Run: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&flagNumSamples, "num-samples", "n", 0, "Number of tasks (0 = config value)")
	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output directory (default from config)")
	generateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, medium, hard")
	generateCmd.Flags().IntVar(&flagMapSize, "map-size", 0, "Board edge length (0 = difficulty default)")
	generateCmd.Flags().BoolVar(&flagNoVideos, "no-videos", false, "Skip the animated ground truth")
	generateCmd.Flags().IntVar(&flagWorkers, "workers", -1, "Parallel workers (0 = one per CPU, default from config)")
	generateCmd.Flags().StringVar(&flagClearPolicy, "clear-policy", "", "Clear policy: any, always, never, mixed")
	generateCmd.Flags().IntVar(&flagImageSize, "image-size", 0, "Frame edge in pixels (0 = config value)")
	generateCmd.Flags().IntVar(&flagRetries, "retries", -1, "Extra seeds tried per failed task (default from config)")
	generateCmd.Flags().BoolVar(&flagNoIndex, "no-index", false, "Do not record tasks in the task index")
}

func runGenerate(cmd *cobra.Command, _ []string) {
	logger, err := newLogger("lineclear")
	if err != nil {
		fail("%v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	// Flags override file values; the preset first since it resets sizes
	if err := applyDifficulty(&cfg, flagDifficulty); err != nil {
		fail("%v", err)
	}
	if flagNumSamples > 0 {
		cfg.NumSamples = flagNumSamples
	}
	if flagOutput != "" {
		cfg.OutputDir = flagOutput
	}
	if flagMapSize > 0 {
		cfg.Board.MapSize = flagMapSize
	}
	if flagNoVideos {
		cfg.GenerateVideos = false
	}
	if flagWorkers >= 0 {
		cfg.Workers = flagWorkers
	}
	if flagClearPolicy != "" {
		cfg.Board.ClearPolicy = flagClearPolicy
	}
	if flagImageSize > 0 {
		cfg.ImageSize = flagImageSize
	}
	if flagRetries >= 0 {
		cfg.Retries = flagRetries
	}

	if err := generate(cfg, logger); err != nil {
		fail("%v", err)
	}
}

// generate runs the batch and records it in the task index.
func generate(cfg config.GeneratorConfig, logger *log.Logger) error {
	w := writer.New(cfg.OutputDir, cfg.Domain)
	opts := []batch.Option{
		batch.WithLogger(logger),
		batch.WithWriter(w),
	}

	// Open the task index
	if !flagNoIndex {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open task index, tasks will not be recorded", "error", err)
		} else {
			defer store.Close()
			opts = append(opts, batch.WithIndex(store))
		}
	}

	runner, err := batch.New(cfg, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcomes, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	lines := 0
	for _, o := range outcomes {
		lines += o.Task.Result.LinesCleared()
	}
	logger.Info("done",
		"tasks", len(outcomes),
		"lines", lines,
		"output", w.Dir(),
		"seed", cfg.Seed,
	)
	return nil
}
