package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lineclear/internal/engine"
	"github.com/vovakirdan/lineclear/internal/platform/tui"
	"github.com/vovakirdan/lineclear/internal/prompt"
	"github.com/vovakirdan/lineclear/internal/render"
	"github.com/vovakirdan/lineclear/internal/scenario"
	"github.com/vovakirdan/lineclear/internal/writer"
)

var (
	flagShowDir    string
	flagShowPlain  bool
	flagShowPrompt bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print one scenario and its resolution",
	Long: `Generate one scenario from the seed and print the display board, the
final board and a step-by-step explanation. With --dir, print a task that
was already written instead.

Examples:
  lineclear show --seed 42
  lineclear show --seed 7 --difficulty hard --prompt
  lineclear show --dir data/questions/tetris_task/tetris_0003
  lineclear show --seed 42 --plain`,
	Run: runShow,
}

func init() {
	showCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, medium, hard")
	showCmd.Flags().IntVar(&flagMapSize, "map-size", 0, "Board edge length (0 = difficulty default)")
	showCmd.Flags().StringVar(&flagClearPolicy, "clear-policy", "", "Clear policy: any, always, never")
	showCmd.Flags().StringVar(&flagShowDir, "dir", "", "Print a written task directory")
	showCmd.Flags().BoolVar(&flagShowPlain, "plain", false, "Print boards as letters without colors")
	showCmd.Flags().BoolVar(&flagShowPrompt, "prompt", false, "Also print the task prompt")
}

func runShow(_ *cobra.Command, _ []string) {
	if flagShowDir != "" {
		showDir(flagShowDir)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	if err := applyDifficulty(&cfg, flagDifficulty); err != nil {
		fail("%v", err)
	}
	if flagMapSize > 0 {
		cfg.Board.MapSize = flagMapSize
	}
	if flagClearPolicy != "" {
		cfg.Board.ClearPolicy = flagClearPolicy
	}

	sc, err := cfg.ScenarioConfig(0, cfg.Seed)
	if err != nil {
		fail("%v", err)
	}
	res, err := scenario.Generate(sc)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("%s  seed %d  (%d attempts)\n\n", res.Scenario.Profile, cfg.Seed, res.Scenario.Attempts)
	fmt.Println(boards(res.Display(), res.Final))
	fmt.Println()
	fmt.Println(prompt.Explain(res))

	if flagShowPrompt {
		text, err := prompt.For(res)
		if err != nil {
			fail("%v", err)
		}
		fmt.Println()
		fmt.Println(text)
	}
}

func showDir(dir string) {
	m, err := writer.ReadMetadata(dir)
	if err != nil {
		fail("%v", err)
	}
	_, display, final, err := m.Boards()
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("%s  %s %dx%d  seed %d\n\n", m.TaskID, m.Difficulty, m.Width, m.Height, m.Seed)
	fmt.Println(boards(display, final))
	fmt.Println()
	fmt.Println(m.Explanation)
}

// boards renders the display and final boards side by side.
func boards(display, final engine.Snapshot) string {
	if flagShowPlain {
		return lipgloss.JoinHorizontal(lipgloss.Center, display.String(), "   ->   ", final.String())
	}
	left := tui.RenderScreen(render.Screen(render.Frame{Board: display}))
	right := tui.RenderScreen(render.Screen(render.Frame{Board: final}))
	return lipgloss.JoinHorizontal(lipgloss.Center, left, "  ->  ", right)
}
