package render

import (
	"image/color"
	"math"
)

// Palette colours the cross-section.
type Palette struct {
	Rock  color.RGBA
	Water color.RGBA
	Sky   color.RGBA
}

// DefaultPalette is used by the viewer.
var DefaultPalette = Palette{
	Rock:  color.RGBA{R: 120, G: 104, B: 88, A: 255},
	Water: color.RGBA{R: 36, G: 82, B: 140, A: 255},
	Sky:   color.RGBA{R: 14, G: 16, B: 22, A: 255},
}

// FillProfileRGBA rasterises a profile with uniform row spacing into buf, a
// w*h RGBA buffer. A pixel is rock when the row nearest its elevation has its
// face at or seaward of the pixel, water when it lies below seaLevel, and sky
// otherwise. Elevations below the first row are always rock.
func FillProfileRGBA(buf []byte, w, h int, v View, z, x []float64, seaLevel float64, pal Palette) {
	n := len(z)
	if n == 0 || len(x) != n || len(buf) < w*h*4 {
		return
	}
	dz := 1.0
	if n > 1 {
		dz = (z[n-1] - z[0]) / float64(n-1)
	}
	for row := 0; row < h; row++ {
		elev := v.ZAt(row, h)
		idx := int(math.Floor((elev-z[0])/dz + 0.5))
		for col := 0; col < w; col++ {
			pos := v.XAt(col, w)
			var c color.RGBA
			switch {
			case idx < 0:
				c = pal.Rock
			case idx < n && x[idx] <= pos:
				c = pal.Rock
			case elev <= seaLevel:
				c = pal.Water
			default:
				c = pal.Sky
			}
			base := (row*w + col) * 4
			buf[base+0] = c.R
			buf[base+1] = c.G
			buf[base+2] = c.B
			buf[base+3] = c.A
		}
	}
}
