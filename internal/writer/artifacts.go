package writer

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/lineclear/internal/engine"
	"github.com/vovakirdan/lineclear/internal/registry"
	"github.com/vovakirdan/lineclear/internal/render"
)

func init() {
	registry.Register("first_frame", func() registry.Artifact {
		return frameArtifact{
			id: "first_frame", title: "Initial board with the falling piece",
			board: func(t *registry.Task) engine.Snapshot { return t.Result.Display() },
		}
	})
	registry.Register("final_frame", func() registry.Artifact {
		return frameArtifact{
			id: "final_frame", title: "Board after all clears",
			board: func(t *registry.Task) engine.Snapshot { return t.Result.Final },
		}
	})
	registry.Register("ground_truth", func() registry.Artifact { return animationArtifact{} })
	registry.Register("prompt", func() registry.Artifact { return promptArtifact{} })
	registry.Register("metadata", func() registry.Artifact { return metadataArtifact{} })
}

// frameArtifact writes one board as a PNG still.
type frameArtifact struct {
	id    string
	title string
	board func(t *registry.Task) engine.Snapshot
}

func (a frameArtifact) ID() string { return a.id }
func (a frameArtifact) Title() string { return a.title }
func (a frameArtifact) Filename() string { return a.id + ".png" }
func (a frameArtifact) Enabled(*registry.Task) bool { return true }

func (a frameArtifact) Write(w io.Writer, t *registry.Task) error {
	return render.NewRenderer(t.Options.ImageSize).WritePNG(w, a.board(t))
}

// animationArtifact writes the resolution as an animated GIF.
type animationArtifact struct{}

func (animationArtifact) ID() string { return "ground_truth" }
func (animationArtifact) Title() string { return "Animated resolution" }
func (animationArtifact) Filename() string { return "ground_truth.gif" }

func (animationArtifact) Enabled(t *registry.Task) bool {
	return t.Options.Videos
}

func (animationArtifact) Write(w io.Writer, t *registry.Task) error {
	frames := render.Timeline(t.Result, render.DefaultTiming())
	return render.NewRenderer(t.Options.ImageSize).WriteGIF(w, frames, t.Options.VideoFPS)
}

// promptArtifact writes the task question.
type promptArtifact struct{}

func (promptArtifact) ID() string { return "prompt" }
func (promptArtifact) Title() string { return "Task prompt" }
func (promptArtifact) Filename() string { return "prompt.txt" }
func (promptArtifact) Enabled(*registry.Task) bool { return true }

func (promptArtifact) Write(w io.Writer, t *registry.Task) error {
	_, err := io.WriteString(w, t.Prompt+"\n")
	return err
}

// metadataArtifact writes the task record as YAML.
type metadataArtifact struct{}

func (metadataArtifact) ID() string { return "metadata" }
func (metadataArtifact) Title() string { return "Task parameters and resolution" }
func (metadataArtifact) Filename() string { return MetadataFile }
func (metadataArtifact) Enabled(*registry.Task) bool { return true }

func (metadataArtifact) Write(w io.Writer, t *registry.Task) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewMetadata(t)); err != nil {
		return err
	}
	return enc.Close()
}
