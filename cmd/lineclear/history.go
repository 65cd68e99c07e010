package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lineclear/internal/platform/tui"
	"github.com/vovakirdan/lineclear/internal/scenario"
	"github.com/vovakirdan/lineclear/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List generated tasks",
	Long: `Display the most recently generated tasks from the task index, with
per-difficulty statistics.

Examples:
  lineclear history
  lineclear history --difficulty hard --limit 20
  lineclear history --tui
  lineclear history --clear`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Only show one difficulty")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of tasks to show")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse interactively")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete every indexed task")
}

func runHistory(_ *cobra.Command, _ []string) {
	// Open task index
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening task index: %v", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearTasks(); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Println("Task index cleared.")
		return
	}

	if flagHistoryTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	var tasks []storage.TaskRecord
	if flagDifficulty == "" {
		tasks, err = store.RecentTasks(flagHistoryLimit)
	} else {
		var d scenario.Difficulty
		d, err = scenario.ParseDifficulty(flagDifficulty)
		if err == nil {
			tasks, err = store.TasksByDifficulty(string(d), flagHistoryLimit)
		}
	}
	if err != nil {
		store.Close()
		fail("retrieving tasks: %v", err)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks recorded yet.")
		fmt.Println()
		fmt.Println("Run 'lineclear generate' to create some!")
		return
	}

	// Print header
	fmt.Printf("  %-12s  %-6s  %-20s  %-5s  %-16s  %s\n", "Task", "Level", "Seed", "Lines", "Date", "Directory")
	fmt.Printf("  %-12s  %-6s  %-20s  %-5s  %-16s  %s\n", "----", "-----", "----", "-----", "----", "---------")

	// Print tasks
	for _, t := range tasks {
		dateStr := t.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-12s  %-6s  %-20d  %-5d  %-16s  %s\n",
			t.TaskID, t.Difficulty, t.Seed, t.LinesCleared, dateStr, t.OutputDir)
	}

	// Show per-difficulty stats
	stats, err := store.Stats()
	if err != nil || len(stats) == 0 {
		return
	}
	fmt.Println()
	for _, d := range scenario.Difficulties() {
		s, ok := stats[string(d)]
		if !ok {
			continue
		}
		fmt.Printf("%-6s  %d tasks, %.0f%% clear a line, %.2f lines on average\n",
			d, s.TaskCount, s.ClearRate()*100, s.AvgLines)
	}
}
