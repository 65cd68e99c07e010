// Package prompt produces the task text that accompanies each puzzle: the
// question posed about the initial frame and a plain-language account of
// the resolution.
package prompt

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/vovakirdan/lineclear/internal/scenario"
)

// DefaultKind is the template used for unknown kinds.
const DefaultKind = "default"

// Data holds the values a template may reference.
type Data struct {
	N             int // Board edge; boards are square
	Difficulty    string
	PreFilledRows int

	Piece      string // Shape of the landed block shown in the first frame
	Next       string // Shape of the scheduled drop, empty without one
	NextShape  string // The scheduled drop drawn as rows of letters and dots
	NextColumn int    // Leftmost column of the scheduled drop, 0 at the left
}

const animationHint = "IMPORTANT (for visualization): when a line is cleared, animate that row by briefly " +
	"flashing or highlighting the cleared cells and then removing them in-place — do NOT " +
	"create new blocks or use an upward 'flip' animation. After removal, let blocks above " +
	"fall straight down to fill the emptied cells. For simple cases, show a short local " +
	"flash-and-disappear animation focused only on the cleared line(s). Also include a " +
	"brief textual description of the animation steps (e.g., 'row flashes then disappears, " +
	"blocks above fall down')."

const staticBody = "Given a {{.N}}x{{.N}} Tetris map with {{.PreFilledRows}} bottom rows pre-filled " +
	"and the{{if .Piece}} {{.Piece}}{{end}} block shown resting on top of them, lock that block exactly where it " +
	"sits and determine whether any complete line(s) will be cleared. No other block drops.\n\n" +
	"If lines are cleared, animate the elimination: briefly flash the cleared row(s), then " +
	"remove them, and show blocks above falling down to fill the gaps."

var sources = map[string]string{
	DefaultKind: "Given a {{.N}}x{{.N}} Tetris map, determine whether any complete line(s) will be " +
		"cleared after a new block locks. Difficulty: {{.Difficulty}}.\n\n" +
		"If lines are cleared, simulate the elimination process and provide the final map. " +
		animationHint,

	string(scenario.DifficultyEasy):   staticBody,
	string(scenario.DifficultyMedium): staticBody,

	string(scenario.DifficultyHard): "Given a {{.N}}x{{.N}} Tetris map with {{.PreFilledRows}} bottom rows pre-filled " +
		"and the{{if .Piece}} {{.Piece}}{{end}} block shown resting on top of them, simulate both line clearing AND a " +
		"new block drop. First the shown block locks where it is and any complete lines clear. " +
		"{{if .Next}}Then a new {{.Next}} block enters at the top of column {{.NextColumn}} " +
		"(its leftmost cell; columns count from 0 at the left) and hard-drops to the bottom " +
		"without rotating. It is oriented like this:\n{{.NextShape}}" +
		"{{else}}Then a new block hard-drops to the bottom.{{end}}\n\n" +
		"Show the complete sequence: (1) the shown block locks, (2) check for complete lines, " +
		"(3) the new block falls and locks, (4) check again; whenever lines are cleared, animate " +
		"the elimination: flash the cleared row(s), remove them, and show blocks above falling down.",
}

var templates = func() map[string]*template.Template {
	out := make(map[string]*template.Template, len(sources))
	for kind, src := range sources {
		out[kind] = template.Must(template.New(kind).Option("missingkey=error").Parse(src))
	}
	return out
}()

// Kinds returns the available template kinds in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(templates))
	for k := range templates {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Render executes the template of the given kind. Unknown kinds use the
// default template.
func Render(kind string, d Data) (string, error) {
	tmpl, ok := templates[kind]
	if !ok {
		tmpl = templates[DefaultKind]
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, d); err != nil {
		return "", fmt.Errorf("prompt: render %s: %w", kind, err)
	}
	return sb.String(), nil
}

// DataFor extracts template data from a scenario profile.
func DataFor(p scenario.Profile) Data {
	return Data{
		N:             p.Width,
		Difficulty:    string(p.Difficulty),
		PreFilledRows: p.PreFilledRows,
	}
}

// For returns the prompt of a resolved scenario, chosen by its difficulty.
// It names the landed block and, when one is scheduled, the next drop.
func For(res *scenario.Result) (string, error) {
	sc := res.Scenario
	d := DataFor(sc.Profile)
	d.Piece = sc.First.Piece.Shape.String()
	if len(sc.Next) > 0 {
		d.Next = sc.Next[0].Piece.Shape.String()
		d.NextShape = sc.Next[0].Piece.String()
		d.NextColumn = sc.Next[0].Column
	}
	return Render(string(sc.Profile.Difficulty), d)
}
