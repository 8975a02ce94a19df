package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/gkobilansky/reaction-goat/internal/store"
)

// withStore opens the configured store, executes the function, and handles cleanup.
func withStore(fn func(store.Store) error) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Debug().Str("db", cfg.DBPath).Bool("ephemeral", cfg.Ephemeral).Str("profile", cfg.Profile).Msg("opening store")
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(s)
}

func openStore() (store.Store, error) {
	if cfg.Ephemeral {
		return store.NewMemory(), nil
	}
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return s, nil
}

// newLogger builds the process logger. While the terminal UI owns the screen
// (interactive), logs go to the log file or nowhere.
func newLogger(interactive bool) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("invalid log level: %w", err)
	}

	var w io.Writer
	closeFn := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		return zerolog.Nop(), closeFn, nil
	default:
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), closeFn, nil
}

func formatMillis(ms float64) string {
	return fmt.Sprintf("%.1f ms", ms)
}
