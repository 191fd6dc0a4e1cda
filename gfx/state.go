package gfx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type binding struct {
	buf  Buffer
	size int
}

// State tracks buffers, programs and bindings the way a GL context does.
// Backends embed it and implement CompileProgram, Clear and DrawArrays on top
// of Link and Assemble.
type State struct {
	buffers  [][]float32
	programs []*Linked
	current  Program
	bindings map[Location]binding
	clear    mgl32.Vec4
}

func (s *State) CreateBuffer(data []float32) Buffer {
	s.buffers = append(s.buffers, append([]float32(nil), data...))
	return Buffer(len(s.buffers))
}

// Link registers a program whose backend-specific part compiled successfully.
func (s *State) Link(src ProgramSource, data any) Program {
	s.programs = append(s.programs, link(src, data))
	return Program(len(s.programs))
}

func (s *State) program(p Program) *Linked {
	if p == 0 || int(p) > len(s.programs) {
		return nil
	}
	return s.programs[p-1]
}

func (s *State) IsProgram(p Program) bool {
	return s.program(p) != nil
}

func (s *State) UseProgram(p Program) {
	if !s.IsProgram(p) {
		return
	}
	s.current = p
}

// Current returns the program selected by UseProgram, or nil.
func (s *State) Current() *Linked {
	return s.program(s.current)
}

func (s *State) AttribLocation(p Program, name string) Location {
	l := s.program(p)
	if l == nil {
		return NoLocation
	}
	loc, ok := l.attribs[name]
	if !ok {
		return NoLocation
	}
	return loc
}

func (s *State) UniformLocation(p Program, name string) Location {
	l := s.program(p)
	if l == nil {
		return NoLocation
	}
	loc, ok := l.uniforms[name]
	if !ok {
		return NoLocation
	}
	return loc
}

func (s *State) VertexAttribPointer(loc Location, buf Buffer, size int) {
	if !loc.Valid() || buf == 0 || int(buf) > len(s.buffers) || size <= 0 {
		return
	}
	if s.bindings == nil {
		s.bindings = make(map[Location]binding)
	}
	s.bindings[loc] = binding{buf: buf, size: size}
}

func (s *State) uniform(loc Location, kind UniformKind) *uniformValue {
	cur := s.Current()
	if cur == nil || !loc.Valid() || int(loc) >= len(cur.values) {
		return nil
	}
	v := &cur.values[loc]
	if v.kind != kind {
		return nil
	}
	return v
}

func (s *State) UniformMatrix4(loc Location, m mgl32.Mat4) {
	if v := s.uniform(loc, Mat4); v != nil {
		v.mat = m
	}
}

func (s *State) Uniform3(loc Location, vec mgl32.Vec3) {
	if v := s.uniform(loc, Vec3); v != nil {
		v.vec = vec
	}
}

func (s *State) ClearColor(r, g, b, a float32) {
	s.clear = mgl32.Vec4{r, g, b, a}
}

// ClearRGBA returns the colour set by ClearColor.
func (s *State) ClearRGBA() mgl32.Vec4 {
	return s.clear
}

// Assemble runs the current program's vertex stage over count vertices
// starting at first and returns their clip-space positions.
func (s *State) Assemble(first, count int) ([]mgl32.Vec4, *Linked, error) {
	prog := s.Current()
	if prog == nil {
		return nil, nil, ErrInvalidProgram
	}
	if prog.src.Vertex == nil {
		return nil, nil, fmt.Errorf("gfx: program %s has no vertex stage", prog.src.Name)
	}
	if first < 0 || count < 0 {
		return nil, nil, fmt.Errorf("gfx: bad vertex range [%d, %d)", first, first+count)
	}

	values := make([][]float32, len(prog.src.Attributes))
	for i, a := range prog.src.Attributes {
		b, ok := s.bindings[Location(i)]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnboundAttribute, a.Name)
		}
		data := s.buffers[b.buf-1]
		if (first+count)*b.size > len(data) {
			return nil, nil, fmt.Errorf("gfx: attribute %s: buffer holds %d vertices, need %d", a.Name, len(data)/b.size, first+count)
		}
		values[i] = data
	}

	out := make([]mgl32.Vec4, 0, count)
	in := Attributes{index: prog.attribs, values: make([][]float32, len(values))}
	uniforms := prog.Uniforms()
	for v := first; v < first+count; v++ {
		for i, data := range values {
			size := s.bindings[Location(i)].size
			in.values[i] = data[v*size : (v+1)*size]
		}
		out = append(out, prog.src.Vertex(in, uniforms))
	}
	return out, prog, nil
}
