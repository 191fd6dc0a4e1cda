package gfx

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIndices(t *testing.T) {
	cases := []struct {
		name string
		mode Primitive
		n    int
		want []uint16
	}{
		{"strip_quad", TriangleStrip, 4, []uint16{0, 1, 2, 2, 1, 3}},
		{"strip_five", TriangleStrip, 5, []uint16{0, 1, 2, 2, 1, 3, 2, 3, 4}},
		{"strip_too_short", TriangleStrip, 2, nil},
		{"triangles", Triangles, 7, []uint16{0, 1, 2, 3, 4, 5}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Indices(c.mode, c.n, nil)
			if !slices.Equal(got, c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestClipToPixel(t *testing.T) {
	cases := []struct {
		name   string
		in     mgl32.Vec4
		wx, wy float32
	}{
		{"top_left", mgl32.Vec4{-1, 1, 0, 1}, 0, 0},
		{"bottom_right", mgl32.Vec4{1, -1, 0, 1}, 500, 500},
		{"center", mgl32.Vec4{0, 0, 0, 1}, 250, 250},
		{"homogeneous", mgl32.Vec4{2, -2, 0, 2}, 500, 500},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y := ClipToPixel(c.in, 500, 500)
			if !mgl32.FloatEqual(x, c.wx) || !mgl32.FloatEqual(y, c.wy) {
				t.Fatalf("expected (%v,%v), got (%v,%v)", c.wx, c.wy, x, y)
			}
		})
	}
}
