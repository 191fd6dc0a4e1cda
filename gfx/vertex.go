package gfx

import "github.com/go-gl/mathgl/mgl32"

// ClipToPixel maps a clip-space position onto a w×h target whose origin is
// the top-left corner.
func ClipToPixel(p mgl32.Vec4, w, h int) (float32, float32) {
	x, y := p.X(), p.Y()
	if p.W() != 0 && p.W() != 1 {
		x /= p.W()
		y /= p.W()
	}
	return (x + 1) / 2 * float32(w), (1 - y) / 2 * float32(h)
}

// Indices appends the triangle list for n vertices drawn as mode to dst.
// Strip triangles keep the winding of the first one.
func Indices(mode Primitive, n int, dst []uint16) []uint16 {
	switch mode {
	case TriangleStrip:
		for i := 0; i+2 < n; i++ {
			a, b := uint16(i), uint16(i+1)
			if i%2 == 1 {
				a, b = b, a
			}
			dst = append(dst, a, b, uint16(i+2))
		}
	case Triangles:
		for i := 0; i+2 < n; i += 3 {
			dst = append(dst, uint16(i), uint16(i+1), uint16(i+2))
		}
	}
	return dst
}
