package cli

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/SpookyGroup/Spectre-Aegis/internal/analytics/features"
	"github.com/SpookyGroup/Spectre-Aegis/internal/analytics/prediction"
	"github.com/SpookyGroup/Spectre-Aegis/internal/analytics/simulation"
)

var (
	simulateRuns int
	simulateSeed int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <odds-file>",
	Short: "Run Monte Carlo simulations over a saved odds snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simulateRuns, "sims", simulation.DefaultSimulations, "Simulations per game")
	simulateCmd.Flags().Int64Var(&simulateSeed, "seed", 42, "RNG seed")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	games, err := loadGames(args[0])
	if err != nil {
		return err
	}

	predictor := prediction.NewPredictor()
	simulator := simulation.NewSimulator(simulateRuns, simulateSeed)

	predictions := make(map[string]float64, len(games))
	for _, game := range games {
		f := features.Extract(game, time.Now())
		predictions[game.ID] = predictor.PredictWithFeatures(f).HomeWinProbability
	}

	results := simulator.SimulateGames(games, predictions)
	raw, err := sonic.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}
