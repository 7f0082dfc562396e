//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"rockcoast/internal/sims/rockcoast"
)

const lineHeight = 14

// HUD renders the status and parameter panel to the right of the profile.
type HUD struct {
	model *rockcoast.Model
	width int
	panel *ebiten.Image
	lines []string
}

// NewHUD constructs a HUD for the provided model and panel width.
func NewHUD(m *rockcoast.Model, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{model: m, width: width}
}

// Update refreshes the cached text from the model.
func (h *HUD) Update(paused bool, speed int) {
	if h == nil || h.model == nil {
		return
	}
	s := StatusOf(h.model)
	s.Paused = paused
	s.Speed = speed
	h.lines = Lines(s, h.model.Parameters())
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	face := basicfont.Face7x13
	for i, line := range h.lines {
		y := 16 + i*lineHeight
		if y > height {
			break
		}
		text.Draw(h.panel, line, face, 8, y, color.RGBA{R: 220, G: 220, B: 220, A: 255})
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
