//go:build !ebiten

package app

import (
	"fmt"
	"log/slog"

	"rockcoast/internal/sims/rockcoast"
)

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New reports that the ebiten build tag is required for GUI support.
func New(*rockcoast.Model, int, int, *slog.Logger) (*Game, error) {
	return nil, fmt.Errorf("app.New requires building with the 'ebiten' tag")
}

// Reset is a no-op placeholder.
func (g *Game) Reset() error { return nil }

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error {
	return fmt.Errorf("app.Game.Update requires building with the 'ebiten' tag")
}

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
