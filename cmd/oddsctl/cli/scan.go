package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/SpookyGroup/Spectre-Aegis/internal/analytics/arbitrage"
	"github.com/SpookyGroup/Spectre-Aegis/internal/odds"
)

var (
	scanMinProfit float64
	scanMaxProfit float64
	scanBankroll  float64
)

var scanCmd = &cobra.Command{
	Use:   "scan <odds-file>...",
	Short: "Scan saved odds snapshots for arbitrage opportunities",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().Float64Var(&scanMinProfit, "min-profit", 0.01, "Minimum profit fraction to report")
	scanCmd.Flags().Float64Var(&scanMaxProfit, "max-profit", 0.15, "Maximum believable profit fraction")
	scanCmd.Flags().Float64Var(&scanBankroll, "bankroll", 0, "If set, print stake sizing for this bankroll")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	var games []odds.Game
	for _, path := range args {
		loaded, err := loadGames(path)
		if err != nil {
			return err
		}
		games = append(games, loaded...)
	}

	detector := arbitrage.NewDetector(scanMinProfit, scanMaxProfit)
	opportunities := detector.ScanGames(games)

	if len(opportunities) == 0 {
		fmt.Printf("No arbitrage opportunities in %d games\n", len(games))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GAME\tPROFIT%\tHOME BOOK\tHOME ODDS\tAWAY BOOK\tAWAY ODDS\tRISK\tURGENCY")
	for _, opp := range opportunities {
		fmt.Fprintf(w, "%s @ %s\t%.2f\t%s\t%.2f\t%s\t%.2f\t%s\t%s\n",
			opp.AwayTeam, opp.HomeTeam, opp.ProfitPercentage,
			opp.BestHomeBookmaker, opp.BestHomeOdds,
			opp.BestAwayBookmaker, opp.BestAwayOdds,
			opp.RiskLevel, opp.TimeSensitivity)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if scanBankroll > 0 {
		fmt.Printf("\nStake sizing for bankroll %.2f (best opportunity):\n", scanBankroll)
		stakes := detector.OptimalStakes(opportunities[0], scanBankroll)
		raw, err := sonic.MarshalIndent(stakes, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
	}
	return nil
}

func loadGames(path string) ([]odds.Game, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var games []odds.Game
	if err := sonic.Unmarshal(raw, &games); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return games, nil
}
