package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/decker502/asteroids/internal/score"
)

var flagTopLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the local high score table",
	Long: `Display the top scores recorded on this machine.

Examples:
  asteroids scores
  asteroids scores --limit 25
  asteroids scores clear`,
	Run: runScores,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Wipe the local high score table",
	Run:   runScoresClear,
}

func init() {
	scoresCmd.Flags().IntVar(&flagTopLimit, "limit", score.DefaultTopLimit, "How many entries to show")
	scoresCmd.AddCommand(scoresClearCmd)
}

func runScores(cmd *cobra.Command, args []string) {
	store := openStore()
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	entries, err := store.TopScores(flagTopLimit)
	if err != nil {
		logger.Error("cannot read scores", "error", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'asteroids play' to set the first one!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "Rank", "Score", "Wave", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "----", "-----", "----", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-10d  %-5d  %s\n", i+1, e.Score, e.Wave, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	high, err := store.HighScore()
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", high)
	}
}

func runScoresClear(cmd *cobra.Command, args []string) {
	store := openStore()
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		logger.Error("cannot clear scores", "error", err)
		os.Exit(1)
	}
	fmt.Println("High scores cleared.")
}
