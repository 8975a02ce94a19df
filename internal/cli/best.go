package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gkobilansky/reaction-goat/internal/store"
)

var showAll bool

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the best reaction time",
	Long: `Show the best recorded reaction time for the current profile,
or for every profile with --all.

Example:
  rg best
  rg best --profile alice
  rg best --all`,
	RunE: runBest,
}

func init() {
	bestCmd.Flags().BoolVarP(&showAll, "all", "a", false, "list every profile")
	rootCmd.AddCommand(bestCmd)
}

func runBest(cmd *cobra.Command, args []string) error {
	return withStore(func(s store.Store) error {
		return showBest(cmd.Context(), cmd.OutOrStdout(), s, cfg.Profile, showAll)
	})
}

func showBest(ctx context.Context, out io.Writer, s store.Store, profile string, all bool) error {
	if !all {
		bt, err := s.GetBestTime(ctx, profile)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(out, "No best time recorded for %s yet.\n", profile)
			fmt.Fprintln(out, "Play a round with: rg play")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get best time: %w", err)
		}
		fmt.Fprintf(out, "Best time for %s: %s\n", bt.Key, formatMillis(bt.Millis))
		return printLastSession(ctx, out, s)
	}

	times, err := s.ListBestTimes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list best times: %w", err)
	}
	if len(times) == 0 {
		fmt.Fprintln(out, "No best times yet.")
		return nil
	}

	// Print table
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROFILE\tBEST\tUPDATED")
	for _, bt := range times {
		fmt.Fprintf(w, "%s\t%s\t%s\n", bt.Key, formatMillis(bt.Millis), bt.UpdatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func printLastSession(ctx context.Context, out io.Writer, s store.Store) error {
	id, err := s.GetSetting(ctx, lastSessionSetting)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last session: %w", err)
	}
	fmt.Fprintf(out, "Last session: %s\n", id)
	return nil
}
