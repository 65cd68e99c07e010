package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/lineclear/internal/scenario"
)

// Explain describes the resolution step by step, e.g.
//
//	1. I block locks at column 4, rows 1-4.
//	2. Rows 3, 4 flash then disappear; blocks above fall straight down.
//	Final map: 2 cells remain, 2 lines cleared.
func Explain(res *scenario.Result) string {
	var lines []string
	n := 0
	step := func(format string, args ...any) {
		n++
		lines = append(lines, fmt.Sprintf("%d. ", n)+fmt.Sprintf(format, args...))
	}

	for i, s := range res.Steps {
		pl := s.Placement
		top, bottom := pl.Anchor.Row, pl.Anchor.Row+pl.Piece.Height()-1
		if i > 0 {
			step("A new %s block falls from the top of column %d and hard-drops.", pl.Piece.Shape, pl.Anchor.Col)
		}
		step("%s block locks at column %d, %s.", pl.Piece.Shape, pl.Anchor.Col, rowSpan(top, bottom))

		switch len(s.Cleared) {
		case 0:
			step("No line is complete; nothing is cleared.")
		default:
			step("%s %s %s then %s; blocks above fall straight down.",
				plural(len(s.Cleared), "Row", "Rows"), joinInts(s.Cleared),
				plural(len(s.Cleared), "flashes", "flash"), plural(len(s.Cleared), "disappears", "disappear"))
		}
	}

	cleared := res.LinesCleared()
	lines = append(lines, fmt.Sprintf("Final map: %d cells remain, %d %s cleared.",
		res.Final.FilledCount(), cleared, plural(cleared, "line", "lines")))
	return strings.Join(lines, "\n")
}

func rowSpan(top, bottom int) string {
	if top == bottom {
		return fmt.Sprintf("row %d", top)
	}
	return fmt.Sprintf("rows %d-%d", top, bottom)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}
