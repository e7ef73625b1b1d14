package main

import (
	"raycaster/internal/app"
	"raycaster/internal/config"
	"raycaster/internal/game"
	"raycaster/internal/logger"
)

func main() {
	log := logger.For("main")

	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")

	a, err := app.New(cfg, 0, 0)
	if err != nil {
		log.WithError(err).Fatal("failed to start renderer")
	}
	defer a.Shutdown()

	g := game.NewGame(a.Sim, a.Threads, cfg, a)
	if err := game.Run(g); err != nil {
		log.WithError(err).Error("window closed with error")
	}
}
