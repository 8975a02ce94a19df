package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gkobilansky/reaction-goat/internal/audio"
	"github.com/gkobilansky/reaction-goat/internal/config"
	"github.com/gkobilansky/reaction-goat/internal/game"
	"github.com/gkobilansky/reaction-goat/internal/loop"
	"github.com/gkobilansky/reaction-goat/internal/scheduler"
	"github.com/gkobilansky/reaction-goat/internal/store"
	"github.com/gkobilansky/reaction-goat/internal/terminal"
)

const lastSessionSetting = "last_session"

var (
	ephemeral  bool
	sound      bool
	minDelayMs int
	maxDelayMs int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the reaction game",
	Long: `Play the reaction game in the terminal.

Press space or enter, or click, to start. Wait for the screen to turn
yellow and react as fast as you can. Clicking too early ends the round.
Press q or Esc to quit.

Example:
  rg play
  rg play --profile alice --sound
  rg play --ephemeral --min-delay 500 --max-delay 2000`,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
	addPlayFlags(rootCmd)
	rootCmd.AddCommand(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep the best time in memory only")
	cmd.Flags().BoolVar(&sound, "sound", false, "beep when the signal appears")
	cmd.Flags().IntVar(&minDelayMs, "min-delay", 0, "minimum signal delay in ms (inclusive)")
	cmd.Flags().IntVar(&maxDelayMs, "max-delay", 0, "maximum signal delay in ms (exclusive)")
}

func applyPlayFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("ephemeral") {
		c.Ephemeral = ephemeral
	}
	if flags.Changed("sound") {
		c.Sound = sound
	}
	if flags.Changed("min-delay") {
		c.MinDelayMs = minDelayMs
	}
	if flags.Changed("max-delay") {
		c.MaxDelayMs = maxDelayMs
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	sessionID := uuid.NewString()
	logger = logger.With().Str("session", sessionID).Logger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := openPlayStore(ctx, cmd.ErrOrStderr(), logger, sessionID)
	defer s.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	finished := false
	defer func() {
		if !finished {
			screen.Fini()
		}
	}()

	var cue terminal.Cue
	if cfg.Sound {
		c := audio.NewCue(logger)
		defer c.Close()
		cue = c
	}

	l := loop.New(64)
	display := terminal.NewDisplay(screen, terminal.PaletteFromNames(cfg.NeutralColor, cfg.GoColor), cue)
	sched := scheduler.New(clockwork.NewRealClock(), l.Post, logger)

	g, err := newGame(cfg, display, store.ForKey(s, cfg.Profile), sched, clockwork.NewRealClock(), logger)
	if err != nil {
		return err
	}

	logger.Info().Str("profile", cfg.Profile).Msg("session started")

	l.Post(func() { g.Initialize(ctx) })
	app := terminal.NewApp(screen, display, l, logger)
	runErr := app.Run(ctx, func() { g.OnClick(ctx) })

	// The loop has stopped; nothing else touches the game now.
	g.Shutdown()
	screen.Fini()
	finished = true

	logger.Info().Interface("best_ms", g.BestTime()).Msg("session ended")
	printSummary(cmd.OutOrStdout(), g)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// openPlayStore opens the configured store. A database that cannot be opened
// is not fatal: the game falls back to an in-memory store.
func openPlayStore(ctx context.Context, errOut io.Writer, logger zerolog.Logger, sessionID string) store.Store {
	s, err := openStore()
	if err != nil {
		logger.Warn().Err(err).Str("db", cfg.DBPath).Msg("store unavailable, best time will not be saved")
		fmt.Fprintf(errOut, "Warning: %v (best time will not be saved)\n", err)
		return store.NewMemory()
	}

	if err := s.SetSetting(ctx, lastSessionSetting, sessionID); err != nil {
		logger.Warn().Err(err).Msg("failed to record session")
	}
	return s
}

func newGame(c *config.Config, d game.Display, s game.Store, sched game.Scheduler, clock clockwork.Clock, logger zerolog.Logger) (*game.ReactionGame, error) {
	g, err := game.New(game.Config{
		Display:   d,
		Store:     s,
		Scheduler: sched,
		Clock:     clock,
		MinDelay:  c.MinDelay(),
		MaxDelay:  c.MaxDelay(),
		Messages:  c.Messages,
		Logger:    &logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return g, nil
}

func printSummary(w io.Writer, g *game.ReactionGame) {
	if ms, ok := g.LastElapsed(); ok {
		fmt.Fprintf(w, "Last reaction: %d ms\n", ms)
	}
	if best := g.BestTime(); best != nil {
		fmt.Fprintf(w, "Best time (%s): %s\n", cfg.Profile, formatMillis(*best))
	} else {
		fmt.Fprintln(w, "No best time yet.")
	}
}
