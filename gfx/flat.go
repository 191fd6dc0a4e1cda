package gfx

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/flat.kage
var flatFragment []byte

const (
	AttribPosition = "aPosition"
	UniformMVP     = "uMvpMatrix"
	UniformColor   = "uColor"
)

// FlatProgram transforms 2D positions by uMvpMatrix and fills with uColor.
var FlatProgram = ProgramSource{
	Name:       "flat",
	Attributes: []Attribute{{Name: AttribPosition, Size: 2}},
	Uniforms: []Uniform{
		{Name: UniformMVP, Kind: Mat4},
		{Name: UniformColor, Kind: Vec3, Kage: "Color"},
	},
	Vertex: func(in Attributes, u Uniforms) mgl32.Vec4 {
		p := in.Vec2(AttribPosition)
		return u.Mat4(UniformMVP).Mul4x1(mgl32.Vec4{p.X(), p.Y(), 0, 1})
	},
	Fragment: flatFragment,
	Fill: func(u Uniforms) mgl32.Vec4 {
		return u.Vec3(UniformColor).Vec4(1)
	},
}
