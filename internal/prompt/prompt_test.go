package prompt

import (
	"strings"
	"testing"

	"github.com/vovakirdan/lineclear/internal/engine"
	"github.com/vovakirdan/lineclear/internal/scenario"
)

func TestRenderKinds(t *testing.T) {
	kinds := Kinds()
	want := []string{"default", "easy", "hard", "medium"}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Fatalf("Kinds() = %v, expected %v", kinds, want)
	}

	got, err := Render("easy", Data{N: 5, Difficulty: "easy", PreFilledRows: 2})
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if !strings.HasPrefix(got, "Given a 5x5 Tetris map with 2 bottom rows pre-filled") {
		t.Errorf("unexpected easy prompt: %q", got)
	}

	got, err = Render("hard", Data{N: 10, Difficulty: "hard", PreFilledRows: 3})
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if !strings.Contains(got, "10x10") || !strings.Contains(got, "hard-drop") {
		t.Errorf("unexpected hard prompt: %q", got)
	}
}

func TestRenderUnknownKindUsesDefault(t *testing.T) {
	got, err := Render("nightmare", Data{N: 8, Difficulty: "nightmare"})
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if !strings.Contains(got, "Given a 8x8 Tetris map") || !strings.Contains(got, "Difficulty: nightmare.") {
		t.Errorf("unexpected default prompt: %q", got)
	}
	if !strings.Contains(got, "do NOT create new blocks") {
		t.Errorf("default prompt lost the animation hint: %q", got)
	}
}

func TestForUsesProfile(t *testing.T) {
	res, err := scenario.Generate(scenario.Config{
		Difficulty:  scenario.DifficultyMedium,
		MapSize:     8,
		Seed:        5,
		FillRatio:   0.8,
		FillJitter:  0.2,
		ClearPolicy: scenario.ClearAny,
	})
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	got, err := For(res)
	if err != nil {
		t.Fatalf("For() failed: %v", err)
	}
	if !strings.HasPrefix(got, "Given a 8x8 Tetris map with 3 bottom rows pre-filled") {
		t.Errorf("prompt does not follow the profile: %q", got)
	}
}

func TestExplain(t *testing.T) {
	terrain, err := engine.ParseBoard([]string{"..J..", "JJJJ.", "JJJJ.", "JJJJ.", "JJJJ."})
	if err != nil {
		t.Fatal(err)
	}
	vertical, _ := engine.NewPiece(engine.ShapeI, 1)
	square, _ := engine.NewPiece(engine.ShapeO, 0)

	res, err := scenario.Resolve(&scenario.Scenario{
		Profile: scenario.DefaultProfile(scenario.DifficultyHard),
		Initial: terrain.Snapshot(),
		First:   engine.Placement{Piece: vertical, Anchor: engine.Pos{Row: 1, Col: 4}},
		Next:    []scenario.Drop{{Piece: square, Column: 1}},
	})
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	want := strings.Join([]string{
		"1. I block locks at column 4, rows 1-4.",
		"2. Rows 1, 2, 3, 4 flash then disappear; blocks above fall straight down.",
		"3. A new O block falls from the top of column 1 and hard-drops.",
		"4. O block locks at column 1, rows 2-3.",
		"5. No line is complete; nothing is cleared.",
		"Final map: 5 cells remain, 4 lines cleared.",
	}, "\n")
	if got := Explain(res); got != want {
		t.Errorf("Explain() =\n%s\nexpected\n%s", got, want)
	}
}

func TestForNamesTheLandedBlock(t *testing.T) {
	for _, d := range []scenario.Difficulty{scenario.DifficultyEasy, scenario.DifficultyMedium} {
		res, err := scenario.Generate(scenario.Config{
			Difficulty:  d,
			Seed:        11,
			FillRatio:   0.8,
			FillJitter:  0.2,
			ClearPolicy: scenario.ClearAny,
		})
		if err != nil {
			t.Fatalf("Generate(%s) failed: %v", d, err)
		}
		got, err := For(res)
		if err != nil {
			t.Fatalf("For(%s) failed: %v", d, err)
		}
		shape := res.Scenario.First.Piece.Shape.String()
		if !strings.Contains(got, "the "+shape+" block shown resting on top") {
			t.Errorf("%s prompt does not mention the %s block: %q", d, shape, got)
		}
		if !strings.Contains(got, "lock that block") {
			t.Errorf("%s prompt does not ask for the lock: %q", d, got)
		}
		if strings.Contains(got, "no new block drop") {
			t.Errorf("%s prompt still denies the piece: %q", d, got)
		}
	}
}

func TestForDescribesTheNextDrop(t *testing.T) {
	terrain, err := engine.ParseBoard([]string{"..J..", "JJJJ.", "JJJJ.", "JJJJ.", "JJJJ."})
	if err != nil {
		t.Fatal(err)
	}
	vertical, _ := engine.NewPiece(engine.ShapeI, 1)
	tee, _ := engine.NewPiece(engine.ShapeT, 0)

	profile := scenario.DefaultProfile(scenario.DifficultyHard)
	profile.Width, profile.Height = 5, 5
	res, err := scenario.Resolve(&scenario.Scenario{
		Profile: profile,
		Initial: terrain.Snapshot(),
		First:   engine.Placement{Piece: vertical, Anchor: engine.Pos{Row: 1, Col: 4}},
		Next:    []scenario.Drop{{Piece: tee, Column: 2}},
	})
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	got, err := For(res)
	if err != nil {
		t.Fatalf("For() failed: %v", err)
	}
	for _, want := range []string{
		"the I block shown resting on top",
		"a new T block enters at the top of column 2",
		"oriented like this:\n.T.\nTTT",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("hard prompt lacks %q:\n%s", want, got)
		}
	}
}
