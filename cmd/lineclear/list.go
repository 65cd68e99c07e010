package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lineclear/internal/prompt"
	"github.com/vovakirdan/lineclear/internal/registry"
	"github.com/vovakirdan/lineclear/internal/scenario"

	// Import the writer to register its artifacts
	_ "github.com/vovakirdan/lineclear/internal/writer"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List artifacts, difficulties and prompt kinds",
	Long:  `Shows the files written per task, the difficulty profiles and the prompt templates.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	artifacts := registry.List()

	fmt.Println("Artifacts written per task:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "File" header
	for _, a := range artifacts {
		if len(a.Filename) > maxNameLen {
			maxNameLen = len(a.Filename)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxNameLen, "File", "Content")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-------")

	// Print artifacts
	for _, a := range artifacts {
		fmt.Printf("  %-*s  %s\n", maxNameLen, a.Filename, a.Title)
	}

	fmt.Println()
	fmt.Println("Difficulties:")
	fmt.Println()
	for _, d := range scenario.Difficulties() {
		fmt.Printf("  %s\n", scenario.DefaultProfile(d))
	}

	fmt.Println()
	fmt.Println("Prompt kinds:")
	fmt.Println()
	for _, k := range prompt.Kinds() {
		fmt.Printf("  %s\n", k)
	}

	fmt.Println()
	fmt.Println("Run 'lineclear generate --difficulty <name>' to write tasks.")
}
