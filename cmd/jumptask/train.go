package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumping-task/internal/core"
	"github.com/vovakirdan/jumping-task/internal/env"
	"github.com/vovakirdan/jumping-task/internal/registry"
	"github.com/vovakirdan/jumping-task/internal/rl"
	"github.com/vovakirdan/jumping-task/internal/storage"
)

var (
	flagTrainEnv    string
	flagTrainConfig string
	flagPolicy      string
	flagEpisodes    int
	flagHorizon     int
	flagAlpha       float64
	flagGamma       float64
	flagEpsilon     float64
	flagPlotDir     string
	flagNoSave      bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a tabular policy on an environment",
	Long: `Run tabular reinforcement learning on an environment variant and
report episode returns. The coordinates variant keeps the state space
small enough for Q-learning to converge quickly.

Policies:
  epsilon-greedy - Q-learning with epsilon-greedy exploration (default)
  softmax        - Q-learning with Boltzmann exploration
  random         - Uniform random baseline

Examples:
  jumptask train --env jumping-coordinates-v0 --episodes 500
  jumptask train --policy softmax --alpha 0.5 --gamma 0.99
  jumptask train --episodes 1000 --plot-dir ./plots`,
	Run: runTrain,
}

func init() {
	trainCmd.Flags().StringVar(&flagTrainEnv, "env", "jumping-coordinates-v0", "Environment variant to train on")
	trainCmd.Flags().StringVar(&flagTrainConfig, "config", "", "Path to custom environment config YAML")
	trainCmd.Flags().StringVar(&flagPolicy, "policy", "epsilon-greedy", "Policy: epsilon-greedy, softmax, random")
	trainCmd.Flags().IntVar(&flagEpisodes, "episodes", 500, "Number of training episodes")
	trainCmd.Flags().IntVar(&flagHorizon, "horizon", 700, "Maximum steps per episode")
	trainCmd.Flags().Float64Var(&flagAlpha, "alpha", 0.5, "Learning rate")
	trainCmd.Flags().Float64Var(&flagGamma, "gamma", 0.99, "Discount factor")
	trainCmd.Flags().Float64Var(&flagEpsilon, "epsilon", 0.1, "Exploration rate for epsilon-greedy")
	trainCmd.Flags().StringVar(&flagPlotDir, "plot-dir", "", "Directory for learning curve and visit heatmap plots")
	trainCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Skip persisting the run to the database")
}

func runTrain(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "jumptask-train",
	})

	if !registry.Exists(flagTrainEnv) {
		logger.Error("unknown environment", "env", flagTrainEnv)
		os.Exit(1)
	}

	env.SetConfigPath(flagTrainConfig)
	if flagSeed != 0 {
		env.SetSeed(flagSeed)
	}

	e, err := registry.Create(flagTrainEnv)
	if err != nil {
		logger.Error("cannot create environment", "error", err)
		os.Exit(1)
	}
	defer e.Close()

	policySeed := uint64(flagSeed)
	if policySeed == 0 {
		policySeed = uint64(time.Now().UnixNano())
	}

	var policy rl.Policy
	switch flagPolicy {
	case "epsilon-greedy":
		policy = rl.NewEpsilonGreedyPolicy(flagAlpha, flagGamma, flagEpsilon, policySeed)
	case "softmax":
		policy = rl.NewSoftmaxPolicy(flagAlpha, flagGamma, policySeed)
	case "random":
		policy = rl.NewRandomPolicy(policySeed)
	default:
		logger.Error("unknown policy", "policy", flagPolicy)
		os.Exit(1)
	}

	logEvery := flagEpisodes / 10
	if logEvery < 1 {
		logEvery = 1
	}

	trainCfg := rl.Config{
		Episodes: flagEpisodes,
		Horizon:  flagHorizon,
		OnEpisode: func(r rl.EpisodeResult) {
			if (r.Episode+1)%logEvery != 0 {
				return
			}
			logger.Info("episode finished",
				"episode", r.Episode+1,
				"steps", r.Steps,
				"return", r.Return,
				"success", r.Success,
			)
		},
	}

	// The visit heatmap needs agent positions, which only the concrete
	// environment exposes.
	var visits *rl.VisitGrid
	if inspectable, ok := e.(interface{ State() env.State }); ok && flagPlotDir != "" {
		s := inspectable.State()
		visits = rl.NewVisitGrid(s.ScreenW, s.ScreenH)
		trainCfg.OnStep = func(episode, step int, obs core.Observation, action core.Action, reward float64) {
			s := inspectable.State()
			visits.Record(s.AgentX, s.AgentY)
		}
	}

	logger.Info("training",
		"env", flagTrainEnv,
		"policy", policy.Name(),
		"episodes", flagEpisodes,
		"horizon", flagHorizon,
	)

	agent := rl.NewAgent(trainCfg, policy, e)
	results, err := agent.Run(context.Background())
	if err != nil {
		logger.Error("training failed", "error", err)
		os.Exit(1)
	}

	summary := rl.Summarize(results)
	logger.Info("training complete",
		"episodes", summary.Episodes,
		"mean_return", fmt.Sprintf("%.2f", summary.MeanReturn),
		"std_return", fmt.Sprintf("%.2f", summary.StdReturn),
		"best_return", summary.BestReturn,
		"success_rate", fmt.Sprintf("%.2f", summary.SuccessRate),
	)

	if flagPlotDir != "" {
		if err := writePlots(results, visits); err != nil {
			logger.Error("cannot write plots", "error", err)
			os.Exit(1)
		}
		logger.Info("plots written", "dir", flagPlotDir)
	}

	if !flagNoSave {
		saveTrainingRun(logger, policy.Name(), summary)
	}
}

func writePlots(results []rl.EpisodeResult, visits *rl.VisitGrid) error {
	if err := os.MkdirAll(flagPlotDir, 0o755); err != nil {
		return err
	}

	returnsPath := filepath.Join(flagPlotDir, "returns.png")
	title := fmt.Sprintf("%s returns", flagTrainEnv)
	if err := rl.PlotReturns(results, title, returnsPath); err != nil {
		return err
	}

	if visits != nil {
		visitsPath := filepath.Join(flagPlotDir, "visits.png")
		title := fmt.Sprintf("%s visits", flagTrainEnv)
		if err := rl.PlotVisits(visits, title, visitsPath); err != nil {
			return err
		}
	}
	return nil
}

func saveTrainingRun(logger *log.Logger, policyName string, summary rl.Summary) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, run not saved", "error", err)
		return
	}
	defer store.Close()

	run := storage.TrainingRun{
		EnvID:       flagTrainEnv,
		Policy:      policyName,
		Episodes:    flagEpisodes,
		Horizon:     flagHorizon,
		MeanReturn:  summary.MeanReturn,
		BestReturn:  summary.BestReturn,
		SuccessRate: summary.SuccessRate,
	}
	if _, err := store.SaveTrainingRun(run); err != nil {
		logger.Warn("could not save training run", "error", err)
		return
	}
	logger.Info("training run saved", "db", flagDBPath)
}
