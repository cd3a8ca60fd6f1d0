package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumping-task/internal/core"
	"github.com/vovakirdan/jumping-task/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available environment variants",
	Long:  `Shows a list of all registered environment variants.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	envs := registry.List()

	if len(envs) == 0 {
		fmt.Println("No environments available.")
		return
	}

	fmt.Println("Available environments:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, e := range envs {
		maxIDLen = core.MaxI(maxIDLen, len(e.ID))
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print environments
	for _, e := range envs {
		fmt.Printf("  %-*s  %s\n", maxIDLen, e.ID, e.Title)
	}

	fmt.Println()
	fmt.Println("Run 'jumptask play <id>' to play an environment.")
}
