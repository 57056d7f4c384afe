package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/SpookyGroup/Spectre-Aegis/internal/odds"
)

var (
	fetchOutput string
	fetchHours  int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <sport>",
	Short: "Fetch current odds for a sport",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "Write odds JSON to a file instead of stdout")
	fetchCmd.Flags().IntVar(&fetchHours, "hours-ahead", 0, "Only include games starting within this many hours")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	sport := args[0]

	client, err := newOddsClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	var games []odds.Game
	if fetchHours > 0 {
		games, err = client.UpcomingGames(ctx, sport, fetchHours)
	} else {
		games, err = client.Odds(ctx, sport, odds.Options{})
	}
	if err != nil {
		return fmt.Errorf("failed to fetch odds for %s: %w", sport, err)
	}

	raw, err := sonic.MarshalIndent(games, "", "  ")
	if err != nil {
		return err
	}

	if fetchOutput == "" {
		fmt.Println(string(raw))
		return nil
	}
	if err := os.WriteFile(fetchOutput, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", fetchOutput, err)
	}
	fmt.Printf("Wrote %d games to %s\n", len(games), fetchOutput)
	return nil
}
