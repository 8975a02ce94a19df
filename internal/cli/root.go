package cli

import (
	"github.com/spf13/cobra"

	"github.com/gkobilansky/reaction-goat/internal/config"
)

var (
	configPath string
	dbPath     string
	profile    string
	logLevel   string
	logFile    string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "rg",
	Short: "Reaction Goat - measure your reaction time in the terminal",
	Long: `🐐 Reaction Goat is a tiny reaction-time game for the terminal.
Click (or press space) to start, wait for the screen to turn yellow,
then click again as fast as you can. Your best time is kept in SQLite.

Running without a subcommand starts a game (same as 'rg play').`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runPlay, // Default action is to play
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default ./rg.db, env RG_DB_PATH)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "profile the best time is stored under (env RG_PROFILE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (env RG_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file (env RG_LOG_FILE)")
}

// loadConfig resolves defaults, config file, .env and RG_* variables, then
// applies any flags given explicitly on the command line.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotenv(".env"); err != nil {
		return err
	}

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		c.DBPath = dbPath
	}
	if flags.Changed("profile") {
		c.Profile = profile
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		c.LogFile = logFile
	}
	applyPlayFlags(cmd, c)

	if err := c.Validate(); err != nil {
		return err
	}

	cfg = c
	return nil
}
