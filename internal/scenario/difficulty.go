package scenario

import (
	"fmt"
	"strings"
)

// Difficulty names a scenario variant.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties returns all variants in increasing order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty converts a string to a Difficulty. Empty means easy.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, s)
	}
}

// Profile is the resolved shape of a difficulty: board size, pre-filled
// rows and whether a second piece is dropped after the first clear.
// The builder resolves it once; the resolver only follows the scenario.
type Profile struct {
	Difficulty    Difficulty
	Width         int
	Height        int
	PreFilledRows int
	SecondDrop    bool
}

// DefaultProfile returns the built-in profile for a difficulty.
//
//	easy   5x5,   2 rows, static
//	medium 10x10, 3 rows, static
//	hard   10x10, 3 rows, second drop
func DefaultProfile(d Difficulty) Profile {
	switch d {
	case DifficultyMedium:
		return Profile{Difficulty: d, Width: 10, Height: 10, PreFilledRows: 3}
	case DifficultyHard:
		return Profile{Difficulty: d, Width: 10, Height: 10, PreFilledRows: 3, SecondDrop: true}
	default:
		return Profile{Difficulty: DifficultyEasy, Width: 5, Height: 5, PreFilledRows: 2}
	}
}

// String returns e.g. "hard 10x10 rows=3 drop".
func (p Profile) String() string {
	mode := "static"
	if p.SecondDrop {
		mode = "drop"
	}
	return fmt.Sprintf("%s %dx%d rows=%d %s", p.Difficulty, p.Width, p.Height, p.PreFilledRows, mode)
}
