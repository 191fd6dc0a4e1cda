package gfx

import "github.com/go-gl/mathgl/mgl32"

// Buffer identifies vertex data uploaded to a Device. Zero is never a valid buffer.
type Buffer uint32

// Program identifies a compiled program on a Device. Zero is never a valid program.
type Program uint32

// Location is an attribute or uniform slot inside a Program.
type Location int32

// NoLocation is returned when a program has no attribute or uniform of the requested name.
const NoLocation Location = -1

func (l Location) Valid() bool {
	return l >= 0
}

// Primitive selects how DrawArrays groups vertices.
type Primitive int

const (
	Triangles Primitive = iota
	// TriangleStrip forms a triangle from each vertex and the two before it.
	TriangleStrip
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle-strip"
	default:
		return "unknown"
	}
}

// Device is the low-level drawing API handed out by a Surface.
type Device interface {
	CreateBuffer(data []float32) Buffer
	CompileProgram(src ProgramSource) (Program, error)
	IsProgram(p Program) bool
	UseProgram(p Program)
	AttribLocation(p Program, name string) Location
	UniformLocation(p Program, name string) Location
	VertexAttribPointer(loc Location, buf Buffer, size int)
	UniformMatrix4(loc Location, m mgl32.Mat4)
	Uniform3(loc Location, v mgl32.Vec3)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawArrays(mode Primitive, first, count int)
}
