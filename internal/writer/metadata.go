package writer

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/lineclear/internal/engine"
	"github.com/vovakirdan/lineclear/internal/registry"
)

// MetadataFile is the name of the metadata artifact.
const MetadataFile = "metadata.yaml"

// Metadata is the machine-readable record of a task: its parameters, the
// boards as text rows and the resolution.
type Metadata struct {
	TaskID        string          `yaml:"task_id"`
	Difficulty    string          `yaml:"difficulty"`
	Seed          int64           `yaml:"seed"`
	Width         int             `yaml:"width"`
	Height        int             `yaml:"height"`
	PreFilledRows int             `yaml:"pre_filled_rows"`
	SecondDrop    bool            `yaml:"second_drop"`
	ClearPolicy   string          `yaml:"clear_policy"`
	Attempts      int             `yaml:"attempts"`
	Initial       []string        `yaml:"initial"`
	Display       []string        `yaml:"display"`
	Final         []string        `yaml:"final"`
	Placements    []PlacementMeta `yaml:"placements"`
	ClearedRows   [][]int         `yaml:"cleared_rows,flow"`
	LinesCleared  int             `yaml:"lines_cleared"`
	Explanation   string          `yaml:"explanation"`
}

// PlacementMeta records one committed piece.
type PlacementMeta struct {
	Shape       string `yaml:"shape"`
	Orientation int    `yaml:"orientation"`
	Row         int    `yaml:"row"`
	Col         int    `yaml:"col"`
}

// NewMetadata collects the metadata of a task.
func NewMetadata(t *registry.Task) Metadata {
	res := t.Result
	sc := res.Scenario

	m := Metadata{
		TaskID:        t.ID,
		Difficulty:    string(sc.Profile.Difficulty),
		Seed:          t.Seed,
		Width:         sc.Profile.Width,
		Height:        sc.Profile.Height,
		PreFilledRows: sc.Profile.PreFilledRows,
		SecondDrop:    sc.Profile.SecondDrop,
		ClearPolicy:   string(sc.Policy),
		Attempts:      sc.Attempts,
		Initial:       res.Initial.Lines(),
		Display:       res.Display().Lines(),
		Final:         res.Final.Lines(),
		ClearedRows:   res.ClearedRows(),
		LinesCleared:  res.LinesCleared(),
		Explanation:   t.Explanation,
	}
	for _, pl := range res.Placements() {
		m.Placements = append(m.Placements, PlacementMeta{
			Shape:       pl.Piece.Shape.String(),
			Orientation: pl.Piece.Orientation,
			Row:         pl.Anchor.Row,
			Col:         pl.Anchor.Col,
		})
	}
	return m
}

// Boards parses the initial, display and final boards back from text.
func (m Metadata) Boards() (initial, display, final engine.Snapshot, err error) {
	parse := func(name string, rows []string) (engine.Snapshot, error) {
		b, err := engine.ParseBoard(rows)
		if err != nil {
			return engine.Snapshot{}, fmt.Errorf("writer: %s board of %s: %w", name, m.TaskID, err)
		}
		return b.Snapshot(), nil
	}
	if initial, err = parse("initial", m.Initial); err != nil {
		return
	}
	if display, err = parse("display", m.Display); err != nil {
		return
	}
	final, err = parse("final", m.Final)
	return
}

// ReadMetadata loads the metadata of a written task directory.
func ReadMetadata(dir string) (Metadata, error) {
	var m Metadata
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		return m, fmt.Errorf("writer: read metadata: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("writer: parse metadata: %w", err)
	}
	return m, nil
}
