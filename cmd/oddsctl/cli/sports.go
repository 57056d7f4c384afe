package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sportsCmd = &cobra.Command{
	Use:   "sports",
	Short: "List available sports",
	RunE:  runSports,
}

func init() {
	rootCmd.AddCommand(sportsCmd)
}

func runSports(cmd *cobra.Command, args []string) error {
	client, err := newOddsClient()
	if err != nil {
		return err
	}

	sports, err := client.Sports(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list sports: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tTITLE\tACTIVE")
	for _, sport := range sports {
		fmt.Fprintf(w, "%s\t%s\t%t\n", sport.Key, sport.Title, sport.Active)
	}
	return w.Flush()
}
