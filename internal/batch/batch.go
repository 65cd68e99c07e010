// Package batch drives a generation run: it generates every sample of a
// GeneratorConfig on a bounded pool of workers, writes the task directories
// and indexes the written tasks.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/lineclear/internal/config"
	"github.com/vovakirdan/lineclear/internal/registry"
	"github.com/vovakirdan/lineclear/internal/scenario"
	"github.com/vovakirdan/lineclear/internal/storage"
	"github.com/vovakirdan/lineclear/internal/writer"
)

// RetryStride separates the seeds tried for one failed sample.
const RetryStride = 7919

// TaskWriter persists one task and reports where it went.
type TaskWriter interface {
	Write(t *registry.Task) (dir string, files []string, err error)
}

// TaskIndex records written tasks.
type TaskIndex interface {
	SaveTask(r storage.TaskRecord) (int64, error)
}

// Outcome is one generated sample.
type Outcome struct {
	Task     *registry.Task
	Dir      string   // Empty when no writer is set
	Files    []string // Artifact file names inside Dir
	Attempts int      // Seeds tried, 1 when the first seed succeeded
}

// Runner generates the samples of one config.
type Runner struct {
	cfg    config.GeneratorConfig
	writer TaskWriter
	index  TaskIndex
	logger *log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithWriter writes every generated task with w.
func WithWriter(w TaskWriter) Option {
	return func(r *Runner) { r.writer = w }
}

// WithIndex records every generated task in idx.
func WithIndex(idx TaskIndex) Option {
	return func(r *Runner) { r.index = idx }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New returns a runner for a validated config.
func New(cfg config.GeneratorConfig, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r, nil
}

// Workers returns the effective size of the worker pool.
func (r *Runner) Workers() int {
	if r.cfg.Workers > 0 {
		return r.cfg.Workers
	}
	return runtime.NumCPU()
}

// Seed returns the seed of the sample at index before any retry.
func (r *Runner) Seed(index int) int64 {
	return r.cfg.Seed + int64(index)
}

// Run generates every sample and returns the outcomes ordered by index.
// The first sample that fails all its seeds cancels the run.
func (r *Runner) Run(ctx context.Context) ([]Outcome, error) {
	n := r.cfg.NumSamples
	outcomes := make([]Outcome, n)

	r.logger.Info("generating",
		"samples", n,
		"difficulty", r.cfg.Difficulty,
		"seed", r.cfg.Seed,
		"workers", r.Workers(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers())
	for i := range n {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := r.sample(i)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The index is only touched from here, in task order.
	for _, out := range outcomes {
		r.logger.Info("task generated",
			"id", out.Task.ID,
			"seed", out.Task.Seed,
			"lines", out.Task.Result.LinesCleared(),
			"attempts", out.Attempts,
		)
		if r.index == nil {
			continue
		}
		if _, err := r.index.SaveTask(Record(out)); err != nil {
			r.logger.Warn("could not index task", "id", out.Task.ID, "error", err)
		}
	}
	return outcomes, nil
}

// sample generates and writes the sample at index, trying derived seeds
// when generation fails.
func (r *Runner) sample(index int) (Outcome, error) {
	id := r.cfg.TaskID(index)
	var lastErr error

	for attempt := 0; attempt <= r.cfg.Retries; attempt++ {
		seed := r.Seed(index) + int64(attempt)*RetryStride
		sc, err := r.cfg.ScenarioConfig(index, seed)
		if err != nil {
			return Outcome{}, fmt.Errorf("batch: %s: %w", id, err)
		}

		res, err := scenario.Generate(sc)
		if err != nil {
			if !errors.Is(err, scenario.ErrGenerationExhausted) {
				return Outcome{}, fmt.Errorf("batch: %s: %w", id, err)
			}
			r.logger.Warn("sample failed",
				"id", id,
				"seed", seed,
				"attempt", attempt+1,
				"error", err,
			)
			lastErr = err
			continue
		}

		task, err := writer.NewTask(r.cfg, index, seed, res)
		if err != nil {
			return Outcome{}, fmt.Errorf("batch: %s: %w", id, err)
		}
		out := Outcome{Task: task, Attempts: attempt + 1}
		if r.writer != nil {
			out.Dir, out.Files, err = r.writer.Write(task)
			if err != nil {
				return Outcome{}, err
			}
			r.logger.Debug("task written", "id", id, "dir", out.Dir, "files", len(out.Files))
		}
		return out, nil
	}

	return Outcome{}, fmt.Errorf("batch: %s failed with %d seeds: %w", id, r.cfg.Retries+1, lastErr)
}

// Record converts an outcome into its task index entry.
func Record(out Outcome) storage.TaskRecord {
	res := out.Task.Result
	profile := res.Scenario.Profile

	placements := make([]string, 0, len(res.Steps))
	for _, pl := range res.Placements() {
		placements = append(placements, pl.String())
	}

	return storage.TaskRecord{
		TaskID:       out.Task.ID,
		OutputDir:    out.Dir,
		Difficulty:   string(profile.Difficulty),
		Seed:         out.Task.Seed,
		Width:        profile.Width,
		Height:       profile.Height,
		LinesCleared: res.LinesCleared(),
		Placements:   strings.Join(placements, " "),
		Initial:      res.Initial,
		Final:        res.Final,
	}
}
