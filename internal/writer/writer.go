// Package writer persists generated tasks. Each task gets its own
// directory under <output>/<domain>_task/<task_id>/ holding one file per
// enabled artifact from the registry.
package writer

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/lineclear/internal/config"
	"github.com/vovakirdan/lineclear/internal/prompt"
	"github.com/vovakirdan/lineclear/internal/registry"
	"github.com/vovakirdan/lineclear/internal/scenario"
)

// NewTask assembles the task at the given batch index from its resolved
// scenario.
func NewTask(cfg config.GeneratorConfig, index int, seed int64, res *scenario.Result) (*registry.Task, error) {
	text, err := prompt.For(res)
	if err != nil {
		return nil, err
	}
	return &registry.Task{
		ID:          cfg.TaskID(index),
		Index:       index,
		Seed:        seed,
		Result:      res,
		Prompt:      text,
		Explanation: prompt.Explain(res),
		Options: registry.Options{
			ImageSize: cfg.ImageSize,
			VideoFPS:  cfg.VideoFPS,
			Videos:    cfg.GenerateVideos,
		},
	}, nil
}

// Writer writes task directories below one output root.
type Writer struct {
	root   string
	domain string
}

// New returns a writer for <outputDir>/<domain>_task.
func New(outputDir, domain string) *Writer {
	return &Writer{root: outputDir, domain: domain}
}

// Dir returns the directory holding every task of the domain.
func (w *Writer) Dir() string {
	return filepath.Join(w.root, w.domain+"_task")
}

// TaskDir returns the directory of one task.
func (w *Writer) TaskDir(id string) string {
	return filepath.Join(w.Dir(), id)
}

// Write writes every enabled registered artifact of the task and returns
// the task directory and the written file names. A task is written
// completely or not at all: on error its directory is removed.
func (w *Writer) Write(t *registry.Task) (dir string, files []string, err error) {
	taskDir := w.TaskDir(t.ID)
	if err := os.MkdirAll(taskDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("writer: cannot create directory %s: %w", taskDir, err)
	}
	defer func() {
		if err != nil {
			//nolint:errcheck // Best-effort cleanup, the write error is what matters
			os.RemoveAll(taskDir)
		}
	}()

	for _, a := range registry.All() {
		if !a.Enabled(t) {
			continue
		}
		if err := writeArtifact(filepath.Join(taskDir, a.Filename()), a, t); err != nil {
			return "", nil, fmt.Errorf("writer: %s of %s: %w", a.ID(), t.ID, err)
		}
		files = append(files, a.Filename())
	}
	return taskDir, files, nil
}

func writeArtifact(path string, a registry.Artifact, t *registry.Task) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	buf := bufio.NewWriter(f)
	if err := a.Write(buf, t); err != nil {
		return err
	}
	return buf.Flush()
}
