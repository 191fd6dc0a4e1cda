package gfx

import "github.com/go-gl/mathgl/mgl32"

// Attribute declares a per-vertex input of Size float components.
type Attribute struct {
	Name string
	Size int
}

type UniformKind int

const (
	Vec3 UniformKind = iota + 1
	Mat4
)

// Uniform declares a program-wide input. Kage names the matching variable in
// the fragment source; it is empty for uniforms only the vertex stage reads.
type Uniform struct {
	Name string
	Kind UniformKind
	Kage string
}

// VertexFunc maps one vertex's attributes to clip space.
type VertexFunc func(in Attributes, u Uniforms) mgl32.Vec4

// FillFunc returns the flat RGBA colour a rasteriser without shader support fills with.
type FillFunc func(u Uniforms) mgl32.Vec4

// ProgramSource is a vertex/fragment pair. The vertex stage runs on the CPU for
// every backend; Fragment is Kage source for GPU backends and Fill serves CPU ones.
type ProgramSource struct {
	Name       string
	Attributes []Attribute
	Uniforms   []Uniform
	Vertex     VertexFunc
	Fragment   []byte
	Fill       FillFunc
}

// Attributes holds the values of one vertex.
type Attributes struct {
	index  map[string]Location
	values [][]float32
}

func (a Attributes) get(name string) []float32 {
	loc, ok := a.index[name]
	if !ok || int(loc) >= len(a.values) {
		return nil
	}
	return a.values[loc]
}

func (a Attributes) Vec2(name string) mgl32.Vec2 {
	var v mgl32.Vec2
	copy(v[:], a.get(name))
	return v
}

type uniformValue struct {
	kind UniformKind
	mat  mgl32.Mat4
	vec  mgl32.Vec3
}

// Uniforms is a read-only view of a program's bound uniform values.
type Uniforms struct {
	index  map[string]Location
	values []uniformValue
}

func (u Uniforms) value(name string, kind UniformKind) (uniformValue, bool) {
	loc, ok := u.index[name]
	if !ok || int(loc) >= len(u.values) || u.values[loc].kind != kind {
		return uniformValue{}, false
	}
	return u.values[loc], true
}

// Mat4 returns the named matrix, or identity when it was never set.
func (u Uniforms) Mat4(name string) mgl32.Mat4 {
	v, ok := u.value(name, Mat4)
	if !ok {
		return mgl32.Ident4()
	}
	return v.mat
}

func (u Uniforms) Vec3(name string) mgl32.Vec3 {
	v, _ := u.value(name, Vec3)
	return v.vec
}

// Linked is a program after a Device accepted it.
type Linked struct {
	src      ProgramSource
	attribs  map[string]Location
	uniforms map[string]Location
	values   []uniformValue
	data     any
}

func link(src ProgramSource, data any) *Linked {
	l := &Linked{
		src:      src,
		attribs:  make(map[string]Location, len(src.Attributes)),
		uniforms: make(map[string]Location, len(src.Uniforms)),
		values:   make([]uniformValue, len(src.Uniforms)),
		data:     data,
	}
	for i, a := range src.Attributes {
		l.attribs[a.Name] = Location(i)
	}
	for i, u := range src.Uniforms {
		l.uniforms[u.Name] = Location(i)
		l.values[i] = uniformValue{kind: u.Kind}
		if u.Kind == Mat4 {
			l.values[i].mat = mgl32.Ident4()
		}
	}
	return l
}

func (l *Linked) Source() ProgramSource {
	return l.src
}

// Data returns whatever the backend stored when linking, such as a compiled shader.
func (l *Linked) Data() any {
	return l.data
}

func (l *Linked) Uniforms() Uniforms {
	return Uniforms{index: l.uniforms, values: l.values}
}

// KageUniforms returns the fragment-visible uniforms keyed by their Kage names.
func (l *Linked) KageUniforms() map[string]any {
	out := make(map[string]any)
	for i, u := range l.src.Uniforms {
		if u.Kage == "" {
			continue
		}
		v := l.values[i]
		switch u.Kind {
		case Vec3:
			out[u.Kage] = []float32{v.vec[0], v.vec[1], v.vec[2]}
		case Mat4:
			out[u.Kage] = append([]float32(nil), v.mat[:]...)
		}
	}
	return out
}
