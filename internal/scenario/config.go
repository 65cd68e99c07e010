package scenario

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrGenerationExhausted is returned when the builder's attempt budget
	// runs out. The caller should pick another seed or relax the config.
	ErrGenerationExhausted = errors.New("scenario: generation exhausted")

	// ErrInvariantViolation signals an internal consistency failure during
	// resolution. It indicates a defect, not bad input.
	ErrInvariantViolation = errors.New("scenario: invariant violation")

	// ErrInvalidConfig is returned for a config that can never produce a scenario.
	ErrInvalidConfig = errors.New("scenario: invalid config")
)

// DefaultMaxAttempts bounds the builder's retry loop.
const DefaultMaxAttempts = 200

// Size limits for MapSize.
const (
	MinMapSize = 4
	MaxMapSize = 64
)

// ClearPolicy constrains whether the resolved scenario clears any line.
type ClearPolicy string

const (
	ClearAny    ClearPolicy = "any"    // accept whatever the seed produces
	ClearAlways ClearPolicy = "always" // at least one line must clear
	ClearNever  ClearPolicy = "never"  // no line may clear
)

// ParseClearPolicy converts a string to a ClearPolicy. Empty means any.
func ParseClearPolicy(s string) (ClearPolicy, error) {
	switch ClearPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", ClearAny:
		return ClearAny, nil
	case ClearAlways:
		return ClearAlways, nil
	case ClearNever:
		return ClearNever, nil
	default:
		return "", fmt.Errorf("%w: unknown clear policy %q", ErrInvalidConfig, s)
	}
}

// accepts reports whether a resolution that cleared the given number of lines
// satisfies the policy.
func (p ClearPolicy) accepts(lines int) bool {
	switch p {
	case ClearAlways:
		return lines > 0
	case ClearNever:
		return lines == 0
	default:
		return true
	}
}

// Config holds every option that determines a scenario.
// Identical Config values always produce identical results.
type Config struct {
	Difficulty    Difficulty
	MapSize       int   // 0 = difficulty default (5 easy, 10 medium/hard)
	Seed          int64 // Source of all randomness
	PreFilledRows int   // 0 = difficulty default (2 easy, 3 medium/hard)

	FillRatio   float64 // Target share of filled cells in the bottom row
	FillJitter  float64 // Uniform +/- jitter applied to FillRatio per row
	ClearPolicy ClearPolicy
	MaxAttempts int // 0 = DefaultMaxAttempts
}

// DefaultConfig returns the config used when only a difficulty is known.
func DefaultConfig(d Difficulty) Config {
	return Config{
		Difficulty:  d,
		FillRatio:   0.8,
		FillJitter:  0.2,
		ClearPolicy: ClearAny,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Profile resolves the difficulty variant and size overrides.
func (c Config) Profile() (Profile, error) {
	d, err := ParseDifficulty(string(c.Difficulty))
	if err != nil {
		return Profile{}, err
	}
	p := DefaultProfile(d)

	if c.MapSize != 0 {
		if c.MapSize < MinMapSize || c.MapSize > MaxMapSize {
			return Profile{}, fmt.Errorf("%w: map size %d outside [%d, %d]",
				ErrInvalidConfig, c.MapSize, MinMapSize, MaxMapSize)
		}
		p.Width = c.MapSize
		p.Height = c.MapSize
	}

	if c.PreFilledRows != 0 {
		p.PreFilledRows = c.PreFilledRows
	}
	// Two free rows above the terrain keep every shape spawnable.
	if p.PreFilledRows < 0 || p.PreFilledRows > p.Height-2 {
		return Profile{}, fmt.Errorf("%w: %d pre-filled rows on a board of height %d",
			ErrInvalidConfig, p.PreFilledRows, p.Height)
	}

	return p, nil
}

// Validate checks every field and returns the first problem found.
func (c Config) Validate() error {
	if _, err := c.Profile(); err != nil {
		return err
	}
	if c.FillRatio < 0 || c.FillRatio > 1 {
		return fmt.Errorf("%w: fill ratio %.2f outside [0, 1]", ErrInvalidConfig, c.FillRatio)
	}
	if c.FillJitter < 0 || c.FillJitter > 1 {
		return fmt.Errorf("%w: fill jitter %.2f outside [0, 1]", ErrInvalidConfig, c.FillJitter)
	}
	if _, err := ParseClearPolicy(string(c.ClearPolicy)); err != nil {
		return err
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("%w: negative attempt budget %d", ErrInvalidConfig, c.MaxAttempts)
	}
	return nil
}

func (c Config) attempts() int {
	if c.MaxAttempts == 0 {
		return DefaultMaxAttempts
	}
	return c.MaxAttempts
}
