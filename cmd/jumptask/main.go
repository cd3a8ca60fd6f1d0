// jumptask is a deterministic jumping task environment for reinforcement
// learning experiments, playable in the terminal.
//
// Usage:
//
//	jumptask list              - List available environment variants
//	jumptask play [env]        - Play an environment interactively
//	jumptask train             - Train a tabular policy on an environment
//	jumptask scores <env>      - Show high scores for an environment
//	jumptask serve             - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible episodes
//	--db <path>     - Set database path (default: ~/.jumptask/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the environment package to register the variants
	_ "github.com/vovakirdan/jumping-task/internal/env"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jumptask",
	Short: "Jumping task - a deterministic RL environment in your terminal",
	Long: `Jumping task is a minimal platformer environment for reinforcement
learning experiments. An agent moves along a floor toward the right edge
of the world and must jump over an obstacle at exactly the right moment.

Available commands:
  list     - Show all environment variants
  play     - Play an environment interactively
  train    - Train a tabular policy
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  jumptask list
  jumptask play jumping-v0
  jumptask train --env jumping-coordinates-v0 --episodes 500
  jumptask scores jumping-v0
  jumptask serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.jumptask/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
