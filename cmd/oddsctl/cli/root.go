// Package cli implements the oddsctl command line tool for pulling odds data
// and running the analytics offline.
package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SpookyGroup/Spectre-Aegis/internal/cache"
	"github.com/SpookyGroup/Spectre-Aegis/internal/config"
	"github.com/SpookyGroup/Spectre-Aegis/internal/odds"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "oddsctl",
	Short: "Sports odds collection and analytics CLI",
	Long: `oddsctl pulls odds data from The Odds API and runs the gateway's
analytics offline: arbitrage scanning and Monte Carlo simulation over saved
odds snapshots.

With no ODDS_API_KEY configured, fetch commands serve deterministic mock
data.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger().SetLevel(logrus.WarnLevel)
		if verbose {
			logger().SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

var sharedLogger *logrus.Logger

func logger() *logrus.Logger {
	if sharedLogger == nil {
		sharedLogger = logrus.New()
		sharedLogger.SetOutput(os.Stderr)
	}
	return sharedLogger
}

// newOddsClient builds an odds client from the environment with a private
// in-memory cache.
func newOddsClient() (*odds.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	store := cache.NewMemoryStore(odds.ResponseTTL, cfg.CacheMaxEntries)
	return odds.NewClient(cfg.Odds.BaseURL, cfg.Odds.APIKey, store, logger()), nil
}
