package writer

import (
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/lineclear/internal/config"
	"github.com/vovakirdan/lineclear/internal/registry"
	"github.com/vovakirdan/lineclear/internal/scenario"
)

func generateTask(t *testing.T, cfg config.GeneratorConfig, index int) *registry.Task {
	t.Helper()
	sc, err := cfg.ScenarioConfig(index, cfg.Seed+int64(index))
	if err != nil {
		t.Fatalf("ScenarioConfig() failed: %v", err)
	}
	res, err := scenario.Generate(sc)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	task, err := NewTask(cfg, index, sc.Seed, res)
	if err != nil {
		t.Fatalf("NewTask() failed: %v", err)
	}
	return task
}

func TestWriteLayout(t *testing.T) {
	cfg := config.Preset(scenario.DifficultyHard)
	cfg.Seed = 11
	cfg.ImageSize = 100
	root := t.TempDir()

	task := generateTask(t, cfg, 3)
	dir, files, err := New(root, cfg.Domain).Write(task)
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	wantDir := filepath.Join(root, "tetris_task", "tetris_0003")
	if dir != wantDir {
		t.Errorf("dir = %s, expected %s", dir, wantDir)
	}
	for _, name := range []string{"first_frame.png", "final_frame.png", "prompt.txt", "ground_truth.gif", "metadata.yaml"} {
		if !slices.Contains(files, name) {
			t.Errorf("%s missing from written files %v", name, files)
		}
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not on disk: %v", name, err)
		}
	}

	f, err := os.Open(filepath.Join(dir, "first_frame.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("first frame is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 100 {
		t.Errorf("first frame is %v, expected 100x100", img.Bounds())
	}

	g, err := os.Open(filepath.Join(dir, "ground_truth.gif"))
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	anim, err := gif.DecodeAll(g)
	if err != nil {
		t.Fatalf("ground truth is not a GIF: %v", err)
	}
	if len(anim.Image) < 30 {
		t.Errorf("animation has %d frames, expected at least 30", len(anim.Image))
	}

	text, err := os.ReadFile(filepath.Join(dir, "prompt.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(text), "Given a 10x10 Tetris map") {
		t.Errorf("unexpected prompt %q", text)
	}
}

func TestWriteWithoutVideos(t *testing.T) {
	cfg := config.DefaultGeneratorConfig()
	cfg.GenerateVideos = false
	cfg.Seed = 4

	dir, files, err := New(t.TempDir(), cfg.Domain).Write(generateTask(t, cfg, 0))
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if slices.Contains(files, "ground_truth.gif") {
		t.Error("animation written although videos are disabled")
	}
	if _, err := os.Stat(filepath.Join(dir, "ground_truth.gif")); !os.IsNotExist(err) {
		t.Errorf("expected no animation on disk, got %v", err)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	cfg := config.Preset(scenario.DifficultyHard)
	cfg.Seed = 21
	cfg.GenerateVideos = false

	task := generateTask(t, cfg, 1)
	dir, _, err := New(t.TempDir(), cfg.Domain).Write(task)
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	m, err := ReadMetadata(dir)
	if err != nil {
		t.Fatalf("ReadMetadata() failed: %v", err)
	}
	if m.TaskID != "tetris_0001" || m.Difficulty != "hard" || m.Seed != 22 {
		t.Errorf("unexpected metadata header %+v", m)
	}
	if len(m.Placements) != 2 || len(m.ClearedRows) != 2 {
		t.Errorf("hard task should record two commits, got %d placements, %d clear sets",
			len(m.Placements), len(m.ClearedRows))
	}
	if m.Explanation != task.Explanation {
		t.Errorf("explanation changed on disk:\n%s\n---\n%s", m.Explanation, task.Explanation)
	}

	initial, display, final, err := m.Boards()
	if err != nil {
		t.Fatalf("Boards() failed: %v", err)
	}
	res := task.Result
	if !initial.Equal(res.Initial) || !display.Equal(res.Display()) || !final.Equal(res.Final) {
		t.Error("boards read back differ from the generated ones")
	}
}

func TestReadMetadataMissing(t *testing.T) {
	if _, err := ReadMetadata(t.TempDir()); err == nil {
		t.Error("Expected error for a directory without metadata")
	}
}
