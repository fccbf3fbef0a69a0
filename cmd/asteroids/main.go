// asteroids is a classic rock-blasting arcade shooter.
//
// Usage:
//
//	asteroids                - Launch the game
//	asteroids play           - Launch the game (seed, fullscreen, profiling flags)
//	asteroids scores         - Show the local high score table
//	asteroids scores clear   - Wipe the local high score table
//
// Global flags:
//
//	--db <path>    - Score database path (default: per-user config directory)
//	--verbose      - Verbose engine logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/decker502/asteroids/internal/score"
)

var (
	// Global flags
	flagDBPath  string
	flagVerbose bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "asteroids",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "asteroids",
	Short: "Asteroids - dodge, shoot and split the rocks",
	Long: `A real-time arcade shooter: steer a lone ship through a wrapping
asteroid field, split the big rocks down to dust and survive the waves.

Available commands:
  play     - Launch the game (also the default when no command is given)
  scores   - View or wipe the local high score table

Examples:
  asteroids
  asteroids play --seed 42
  asteroids play --fullscreen --fps
  asteroids scores
  asteroids scores clear`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the score database (default: per-user config directory)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose engine logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
}

// openStore opens the SQLite score store honouring --db.
// A nil return means the score table is unavailable.
func openStore() score.Store {
	path := flagDBPath
	if path == "" {
		p, err := score.DefaultDBPath()
		if err != nil {
			logger.Warn("cannot resolve score database path", "error", err)
			return nil
		}
		path = p
	}

	store, err := score.OpenSQLite(path)
	if err != nil {
		logger.Warn("cannot open score database", "path", path, "error", err)
		return nil
	}
	return store
}
