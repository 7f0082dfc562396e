//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"rockcoast/internal/render"
)

var (
	seaLevelColor = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	tideColor     = color.RGBA{R: 120, G: 200, B: 255, A: 96}
	initialColor  = color.RGBA{R: 200, G: 180, B: 90, A: 160}
)

// Overlay draws the mean sea level, the tidal band and the initial profile on
// top of the cross-section. T toggles the tidal band, I the initial profile.
type Overlay struct {
	showTide    bool
	showInitial bool
}

// NewOverlay constructs an overlay with the tidal band visible.
func NewOverlay() *Overlay {
	return &Overlay{showTide: true, showInitial: true}
}

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		o.showTide = !o.showTide
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		o.showInitial = !o.showInitial
	}
}

// Draw paints the overlay onto a w*h profile view.
func (o *Overlay) Draw(screen *ebiten.Image, v render.View, w, h int, seaLevel, tidalRange float64, initialZ, initialX []float64) {
	if o == nil {
		return
	}
	line := func(z float64, clr color.Color, width float32) {
		y := float32(v.RowOf(z, h))
		vector.StrokeLine(screen, 0, y, float32(w), y, width, clr, false)
	}
	if o.showTide {
		line(seaLevel-0.5*tidalRange, tideColor, 1)
		line(seaLevel+0.5*tidalRange, tideColor, 1)
	}
	line(seaLevel, seaLevelColor, 2)

	if !o.showInitial || len(initialZ) < 2 {
		return
	}
	col := func(x float64) float32 {
		return float32((x - v.MinX) / (v.MaxX - v.MinX) * float64(w))
	}
	first, last := 0, len(initialZ)-1
	vector.StrokeLine(screen,
		col(initialX[first]), float32(v.RowOf(initialZ[first], h)),
		col(initialX[last]), float32(v.RowOf(initialZ[last], h)),
		1, initialColor, true)
}
