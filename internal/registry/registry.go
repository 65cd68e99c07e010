// Package registry provides a global registry for task artifact writers.
// Artifacts register themselves in init() functions, allowing the writer
// and the CLI to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/vovakirdan/lineclear/internal/scenario"
)

// Task is one generated puzzle together with the run settings that shape
// its files.
type Task struct {
	ID          string // e.g. "tetris_0007"
	Index       int    // Position in the batch
	Seed        int64  // Seed the scenario was built from
	Result      *scenario.Result
	Prompt      string
	Explanation string
	Options     Options
}

// Options carries the output settings shared by every task of a run.
type Options struct {
	ImageSize int
	VideoFPS  int
	Videos    bool
}

// Artifact is one file written into a task directory.
type Artifact interface {
	// ID returns a unique identifier for this artifact (e.g., "first_frame").
	ID() string

	// Title returns a human-readable description for display.
	Title() string

	// Filename returns the file name inside the task directory.
	Filename() string

	// Enabled reports whether the artifact is produced for this task.
	Enabled(t *Task) bool

	// Write encodes the artifact for the task.
	Write(w io.Writer, t *Task) error
}

// ArtifactInfo contains metadata about a registered artifact.
type ArtifactInfo struct {
	ID       string
	Title    string
	Filename string
}

// Factory is a function that creates a new instance of an artifact.
type Factory func() Artifact

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]ArtifactInfo)
	mu        sync.RWMutex
)

// Register adds an artifact factory to the registry.
// Typically called from an init() function.
// Panics if an artifact with the same ID or file name is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: artifact %q already registered", id))
	}

	// Get title and file name by creating a temporary instance
	a := f()
	for other, info := range infos {
		if info.Filename == a.Filename() {
			panic(fmt.Sprintf("registry: artifact %q writes %s, already written by %q", id, a.Filename(), other))
		}
	}

	factories[id] = f
	infos[id] = ArtifactInfo{ID: id, Title: a.Title(), Filename: a.Filename()}
}

// List returns information about all registered artifacts, sorted by ID.
func List() []ArtifactInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ArtifactInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new artifact by its ID.
// Returns an error if the artifact ID is not registered.
func Create(id string) (Artifact, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown artifact %q", id)
	}

	return f(), nil
}

// All instantiates every registered artifact, sorted by ID.
func All() []Artifact {
	list := List()
	out := make([]Artifact, 0, len(list))
	for _, info := range list {
		if a, err := Create(info.ID); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// Exists checks if an artifact with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
