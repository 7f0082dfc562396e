//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"rockcoast/internal/app"
	"rockcoast/internal/sims/rockcoast"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	cfg.BindView(flag.CommandLine)
	flag.Parse()

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	modelCfg, err := cfg.ModelConfig()
	if err != nil {
		log.Fatal(err)
	}

	m := rockcoast.New(modelCfg, rockcoast.WithLogger(logger))
	game, err := app.New(m, cfg.Width, cfg.Height, logger)
	if err != nil {
		log.Fatal(err)
	}
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("rockcoast")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w*cfg.Scale, h*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
