package render

import "math"

// View maps profile coordinates onto a raster. X grows landward to the right,
// Z grows upward.
type View struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// FitView returns a view enclosing every row of the profile, widened by pad on
// each side. Degenerate extents are widened to one unit.
func FitView(z, x []float64, pad float64) View {
	if len(z) == 0 || len(x) == 0 {
		return View{MinX: -1, MaxX: 1, MinZ: -1, MaxZ: 1}
	}
	v := View{MinX: x[0], MaxX: x[0], MinZ: z[0], MaxZ: z[0]}
	for _, xv := range x {
		v.MinX = math.Min(v.MinX, xv)
		v.MaxX = math.Max(v.MaxX, xv)
	}
	for _, zv := range z {
		v.MinZ = math.Min(v.MinZ, zv)
		v.MaxZ = math.Max(v.MaxZ, zv)
	}
	if v.MaxX-v.MinX < 1 {
		v.MaxX = v.MinX + 1
	}
	if v.MaxZ-v.MinZ < 1 {
		v.MaxZ = v.MinZ + 1
	}
	v.MinX -= pad
	v.MaxX += pad
	v.MinZ -= pad
	v.MaxZ += pad
	return v
}

// XAt returns the profile position at the centre of pixel column col.
func (v View) XAt(col, width int) float64 {
	return v.MinX + (float64(col)+0.5)*(v.MaxX-v.MinX)/float64(width)
}

// ZAt returns the elevation at the centre of pixel row row, counted from the
// top of the raster.
func (v View) ZAt(row, height int) float64 {
	return v.MaxZ - (float64(row)+0.5)*(v.MaxZ-v.MinZ)/float64(height)
}

// RowOf returns the raster row showing elevation z, clamped to the raster.
func (v View) RowOf(z float64, height int) int {
	r := int(math.Floor((v.MaxZ - z) / (v.MaxZ - v.MinZ) * float64(height)))
	if r < 0 {
		return 0
	}
	if r >= height {
		return height - 1
	}
	return r
}

// Surface samples the top of the rock at columns evenly spaced across
// [minX, maxX]. A row counts as rock at position x once its face lies at or
// seaward of x. Columns seaward of every row report the lowest elevation.
func Surface(z, x []float64, minX, maxX float64, columns int) []float64 {
	if columns <= 0 || len(z) == 0 || len(z) != len(x) {
		return nil
	}
	out := make([]float64, columns)
	step := (maxX - minX) / float64(columns)
	for c := range out {
		pos := minX + (float64(c)+0.5)*step
		top := z[0]
		for i := range z {
			if x[i] <= pos && z[i] > top {
				top = z[i]
			}
		}
		out[c] = top
	}
	return out
}
