package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/jumping-task/internal/core"
	"github.com/vovakirdan/jumping-task/internal/env"
	"github.com/vovakirdan/jumping-task/internal/platform/tui"
	"github.com/vovakirdan/jumping-task/internal/registry"
	"github.com/vovakirdan/jumping-task/internal/storage"
)

var (
	flagConfig        string
	flagTickRate      int
	flagSlow          bool
	flagTwoObstacles  bool
	flagFinishJump    bool
	flagWithLeft      bool
	flagObstacleColor string
)

var playCmd = &cobra.Command{
	Use:   "play [env]",
	Short: "Play an environment interactively",
	Long: `Start playing the specified environment variant. Defaults to
jumping-v0 when no variant is given.

Controls:
  Space/Up   - Jump
  Right/D    - Move right
  Left/A     - Move left (with --with-left)
  R          - New episode (after the episode ends)
  Q/Ctrl+C   - Quit

Examples:
  jumptask play
  jumptask play jumping-colors-v0 --obstacle-color green
  jumptask play jumping-v0 --two-obstacles --slow
  jumptask play jumping-v0 --with-left --config ./my-task.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom environment config YAML")
	playCmd.Flags().IntVar(&flagTickRate, "fps", 15, "Tick rate (simulation steps per second)")
	playCmd.Flags().BoolVar(&flagSlow, "slow", false, "Slow rendering mode")
	playCmd.Flags().BoolVar(&flagTwoObstacles, "two-obstacles", false, "Use the fixed two-obstacle layout")
	playCmd.Flags().BoolVar(&flagFinishJump, "finish-jump", false, "Resolve a full jump in a single step")
	playCmd.Flags().BoolVar(&flagWithLeft, "with-left", false, "Enable the left action")
	playCmd.Flags().StringVar(&flagObstacleColor, "obstacle-color", "", "Obstacle color: red or green")
}

func runPlay(cmd *cobra.Command, args []string) {
	envID := "jumping-v0"
	if len(args) > 0 {
		envID = args[0]
	}

	if !registry.Exists(envID) {
		fmt.Fprintf(os.Stderr, "Error: unknown environment %q\n", envID)
		fmt.Fprintln(os.Stderr, "Run 'jumptask list' to see available environments.")
		os.Exit(1)
	}

	// Apply overrides before creation
	env.SetConfigPath(flagConfig)
	if flagObstacleColor != "" {
		env.SetObstacleColor(flagObstacleColor)
	}
	if cmd.Flags().Changed("two-obstacles") {
		env.SetTwoObstacles(flagTwoObstacles)
	}
	if cmd.Flags().Changed("finish-jump") {
		env.SetFinishJump(flagFinishJump)
	}
	if cmd.Flags().Changed("with-left") {
		env.SetWithLeftAction(flagWithLeft)
	}
	if flagSeed != 0 {
		env.SetSeed(flagSeed)
	}

	e, err := registry.Create(envID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating environment: %v\n", err)
		os.Exit(1)
	}
	if _, err := e.Reset(); err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting environment: %v\n", err)
		os.Exit(1)
	}

	playable, ok := e.(tui.Playable)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: environment %q is not playable\n", envID)
		os.Exit(1)
	}

	// The world has a fixed size, so warn when the terminal cannot fit it.
	s := playable.State()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if w < s.ScreenW || h < (s.ScreenH+1)/2+3 {
			fmt.Fprintf(os.Stderr, "Warning: terminal %dx%d is smaller than the %dx%d world, display may clip\n",
				w, h, s.ScreenW, (s.ScreenH+1)/2+3)
		}
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - the demo still works
		store = nil
	}

	tickRate := flagTickRate
	if flagSlow {
		tickRate = 5
	}
	withLeft := slices.Contains(e.LegalActions(), core.ActionLeft)

	runErr := tui.Run(playable, store, tui.NewKeyMapper(withLeft), tickRate)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running environment: %v\n", runErr)
		os.Exit(1)
	}
}
