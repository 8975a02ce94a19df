package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/gkobilansky/reaction-goat/internal/store"
)

func init() {
	rootCmd.AddCommand(newResetCmd())
}

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the best time for a profile",
		Long: `Delete the stored best time for the current profile.

You will be asked to confirm unless --yes is given.

Example:
  rg reset
  rg reset --profile alice --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm := promptConfirm
			if yes {
				confirm = func(string) (bool, error) { return true, nil }
			}
			return withStore(func(s store.Store) error {
				return resetBest(cmd.Context(), cmd.OutOrStdout(), s, cfg.Profile, confirm)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func resetBest(ctx context.Context, out io.Writer, s store.Store, profile string, confirm func(string) (bool, error)) error {
	bt, err := s.GetBestTime(ctx, profile)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(out, "Nothing to reset: %s has no best time.\n", profile)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get best time: %w", err)
	}

	ok, err := confirm(fmt.Sprintf("Delete best time %s for %s", formatMillis(bt.Millis), profile))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	if err := s.DeleteBestTime(ctx, profile); err != nil {
		return fmt.Errorf("failed to delete best time: %w", err)
	}

	fmt.Fprintf(out, "Best time for %s has been reset.\n", profile)
	return nil
}

func promptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
