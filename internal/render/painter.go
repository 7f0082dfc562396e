//go:build ebiten

package render

import "github.com/hajimehoshi/ebiten/v2"

// ProfilePainter uploads a rasterised cross-section to an ebiten image.
type ProfilePainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
	pal  Palette
}

// NewProfilePainter allocates a painter for a w*h raster.
func NewProfilePainter(w, h int) *ProfilePainter {
	return &ProfilePainter{
		w:   w,
		h:   h,
		img: ebiten.NewImage(w, h),
		buf: make([]byte, w*h*4),
		pal: DefaultPalette,
	}
}

// Blit draws the profile onto screen at the origin.
func (p *ProfilePainter) Blit(screen *ebiten.Image, v View, z, x []float64, seaLevel float64) {
	FillProfileRGBA(p.buf, p.w, p.h, v, z, x, seaLevel, p.pal)
	p.img.WritePixels(p.buf)
	screen.DrawImage(p.img, nil)
}
