package main

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/balancerush/pkg/app"
)

func main() {
	game, err := app.NewApp(app.Config{
		Verbose:    os.Getenv("BALANCERUSH_VERBOSE") != "",
		ConfigPath: os.Getenv("BALANCERUSH_CONFIG"),
	})
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("Balance Rush")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
