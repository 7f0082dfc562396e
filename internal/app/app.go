//go:build ebiten

package app

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"rockcoast/internal/render"
	"rockcoast/internal/sims/rockcoast"
	"rockcoast/internal/ui"
)

const hudWidth = 240

// Game adapts a rockcoast model to the ebiten.Game interface.
type Game struct {
	model   *rockcoast.Model
	log     *slog.Logger
	painter *render.ProfilePainter
	overlay *ui.Overlay
	hud     *ui.HUD

	view     render.View
	initialZ []float64
	initialX []float64

	w, h     int
	speed    int
	paused   bool
	tickOnce bool
}

// New constructs a Game for the provided model and resets it.
func New(m *rockcoast.Model, w, h int, log *slog.Logger) (*Game, error) {
	g := &Game{
		model:   m,
		log:     log,
		painter: render.NewProfilePainter(w, h),
		overlay: ui.NewOverlay(),
		hud:     ui.NewHUD(m, hudWidth),
		w:       w,
		h:       h,
		speed:   1,
	}
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset restarts the model and refits the view to the initial profile.
func (g *Game) Reset() error {
	if err := g.model.Reset(); err != nil {
		return err
	}
	p := g.model.Profile()
	g.initialZ = append(g.initialZ[:0], p.Z...)
	g.initialX = append(g.initialX[:0], p.X...)
	cfg := g.model.Config()
	g.view = render.FitView(p.Z, p.X, 0)
	g.view.MaxX += cfg.ErosionIncrement * float64(p.Len())
	g.tickOnce = false
	return nil
}

// Update handles per-frame logic and advances the model.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) && g.speed < 64 {
		g.speed *= 2
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) && g.speed > 1 {
		g.speed /= 2
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(); err != nil {
			return err
		}
	}

	g.overlay.Update()

	if !g.paused || g.tickOnce {
		steps := g.speed
		if g.tickOnce {
			steps = 1
		}
		for i := 0; i < steps; i++ {
			if !g.model.Step() {
				if !g.paused {
					g.log.Info("run finished", "time", g.model.Time())
				}
				g.paused = true
				break
			}
		}
		g.tickOnce = false
	}
	g.hud.Update(g.paused, g.speed)
	return nil
}

// Draw renders the cross-section, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	p := g.model.Profile()
	g.painter.Blit(screen, g.view, p.Z, p.X, g.model.SeaLevel())
	g.overlay.Draw(screen, g.view, g.w, g.h, g.model.SeaLevel(), g.model.TidalRange(), g.initialZ, g.initialX)
	g.hud.Draw(screen, g.w, g.h)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w + hudWidth, g.h
}
