package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/decker502/asteroids/assets"
	"github.com/decker502/asteroids/pkg/app"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/embedded"
)

var (
	flagSeed       int64
	flagFullscreen bool
	flagShowFPS    bool
	flagProfile    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Launch the game",
	Long: `Launch the game window.

Controls:
  W / Up            - Thrust
  A,D / Left,Right  - Rotate
  Space             - Fire
  P / Esc           - Pause
  M / N             - Toggle music / sound
  - / =             - Volume down / up
  F11               - Fullscreen

Examples:
  asteroids play
  asteroids play --seed 42
  asteroids play --fullscreen --fps
  asteroids play --profile cpu`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed; non-zero skips the menu and starts a run directly (0 = menu)")
	playCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Start in fullscreen")
	playCmd.Flags().BoolVar(&flagShowFPS, "fps", false, "Show the FPS counter")
	playCmd.Flags().StringVar(&flagProfile, "profile", "", "Write a profile on exit: cpu or mem")
}

func runPlay(cmd *cobra.Command, args []string) {
	switch flagProfile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath(".")).Stop()
	default:
		logger.Fatal("unknown profile mode, want cpu or mem", "profile", flagProfile)
	}

	embedded.Init(assets.FS)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:    flagVerbose,
		Fullscreen: flagFullscreen,
		Seed:       flagSeed,
		ShowFPS:    flagShowFPS,
		Store:      store,
	})
	if err != nil {
		logger.Fatal("game initialization failed", "error", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Asteroids")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		logger.Error("game loop aborted", "error", err)
	}
}
