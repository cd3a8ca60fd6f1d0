package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumping-task/internal/platform/tui"
	"github.com/vovakirdan/jumping-task/internal/registry"
	"github.com/vovakirdan/jumping-task/internal/storage"
)

var (
	flagClearScores bool
	flagShowRuns    bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [env]",
	Short: "Show high scores for an environment",
	Long: `Display the top 10 episode returns for the specified environment,
or browse all leaderboards interactively with --tui.

Examples:
  jumptask scores jumping-v0
  jumptask scores jumping-colors-v0 --runs
  jumptask scores jumping-v0 --clear
  jumptask scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores for the environment")
	scoresCmd.Flags().BoolVar(&flagShowRuns, "runs", false, "Also show recent training runs")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse leaderboards interactively")
}

func runScores(cmd *cobra.Command, args []string) {
	if flagScoresTUI {
		runScoreboard()
		return
	}

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: environment argument required (or use --tui)")
		os.Exit(1)
	}
	envID := args[0]

	if !registry.Exists(envID) {
		fmt.Fprintf(os.Stderr, "Error: unknown environment %q\n", envID)
		fmt.Fprintln(os.Stderr, "Run 'jumptask list' to see available environments.")
		os.Exit(1)
	}

	e, err := registry.Create(envID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating environment: %v\n", err)
		os.Exit(1)
	}
	title := e.Title()
	e.Close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(envID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Scores cleared for %s.\n", title)
		return
	}

	scores, err := store.TopScores(envID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'jumptask play %s' to set the first high score!\n", envID)
	} else {
		// Print header
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Return", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "------", "----")

		for i, entry := range scores {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10.0f  %s\n", i+1, entry.Score, dateStr)
		}

		fmt.Println()
		if highScore, hsErr := store.HighScore(envID); hsErr == nil {
			fmt.Printf("Best: %.0f\n", highScore)
		}
	}

	if flagShowRuns {
		printTrainingRuns(store, envID)
	}
}

func runScoreboard() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunScoreboard(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
		os.Exit(1)
	}
}

func printTrainingRuns(store *storage.Store, envID string) {
	runs, err := store.RecentTrainingRuns(envID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving training runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Recent training runs:")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No training runs recorded yet.")
		return
	}

	fmt.Printf("  %-24s  %-9s  %-11s  %-11s  %-7s  %s\n",
		"Policy", "Episodes", "Mean return", "Best return", "Success", "Date")
	for _, run := range runs {
		fmt.Printf("  %-24s  %-9d  %-11.2f  %-11.0f  %-7.2f  %s\n",
			run.Policy, run.Episodes, run.MeanReturn, run.BestReturn,
			run.SuccessRate, run.CreatedAt.Format("2006-01-02 15:04"))
	}
}
