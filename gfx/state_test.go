package gfx_test

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/boxfall/gfx"
)

func linkFlat(t *testing.T) (*gfx.State, gfx.Program) {
	t.Helper()
	s := &gfx.State{}
	p := s.Link(gfx.FlatProgram, nil)
	s.UseProgram(p)
	return s, p
}

func TestStateLocations(t *testing.T) {
	s, p := linkFlat(t)

	cases := []struct {
		name    string
		got     gfx.Location
		wantVal bool
	}{
		{"attrib_position", s.AttribLocation(p, gfx.AttribPosition), true},
		{"attrib_missing", s.AttribLocation(p, "aNormal"), false},
		{"uniform_mvp", s.UniformLocation(p, gfx.UniformMVP), true},
		{"uniform_color", s.UniformLocation(p, gfx.UniformColor), true},
		{"uniform_missing", s.UniformLocation(p, "uTime"), false},
		{"bad_program", s.AttribLocation(p+1, gfx.AttribPosition), false},
		{"zero_program", s.UniformLocation(0, gfx.UniformMVP), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.got.Valid() != c.wantVal {
				t.Fatalf("expected valid=%v, got location %d", c.wantVal, c.got)
			}
		})
	}

	if s.IsProgram(0) || s.IsProgram(p+1) || !s.IsProgram(p) {
		t.Fatalf("IsProgram reports wrong handles")
	}
}

func TestStateAssemble(t *testing.T) {
	s, p := linkFlat(t)

	quad := []float32{-0.5, 0.5, 0.5, 0.5, -0.5, -0.5, 0.5, -0.5}
	buf := s.CreateBuffer(quad)
	quad[0] = 99 // buffer data is copied on upload

	s.VertexAttribPointer(s.AttribLocation(p, gfx.AttribPosition), buf, 2)
	s.UniformMatrix4(s.UniformLocation(p, gfx.UniformMVP), mgl32.Translate3D(10, 20, 0))
	s.Uniform3(s.UniformLocation(p, gfx.UniformColor), mgl32.Vec3{0.1, 0.2, 0.3})
	// wrong kind for the location: ignored
	s.Uniform3(s.UniformLocation(p, gfx.UniformMVP), mgl32.Vec3{1, 1, 1})

	clip, prog, err := s.Assemble(0, 4)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	want := []mgl32.Vec4{{9.5, 20.5, 0, 1}, {10.5, 20.5, 0, 1}, {9.5, 19.5, 0, 1}, {10.5, 19.5, 0, 1}}
	for i := range want {
		if !clip[i].ApproxEqual(want[i]) {
			t.Fatalf("vertex %d: expected %v, got %v", i, want[i], clip[i])
		}
	}
	if got := prog.Uniforms().Vec3(gfx.UniformColor); got != (mgl32.Vec3{0.1, 0.2, 0.3}) {
		t.Fatalf("unexpected colour %v", got)
	}
	kage := prog.KageUniforms()
	if _, ok := kage["Color"]; !ok || len(kage) != 1 {
		t.Fatalf("expected only Color in kage uniforms, got %v", kage)
	}
	fill := prog.Source().Fill(prog.Uniforms())
	if fill != (mgl32.Vec4{0.1, 0.2, 0.3, 1}) {
		t.Fatalf("unexpected fill %v", fill)
	}
}

func TestStateAssembleErrors(t *testing.T) {
	t.Run("no_program", func(t *testing.T) {
		s := &gfx.State{}
		if _, _, err := s.Assemble(0, 4); !errors.Is(err, gfx.ErrInvalidProgram) {
			t.Fatalf("expected ErrInvalidProgram, got %v", err)
		}
	})
	t.Run("unbound", func(t *testing.T) {
		s, _ := linkFlat(t)
		if _, _, err := s.Assemble(0, 4); !errors.Is(err, gfx.ErrUnboundAttribute) {
			t.Fatalf("expected ErrUnboundAttribute, got %v", err)
		}
	})
	t.Run("short_buffer", func(t *testing.T) {
		s, p := linkFlat(t)
		buf := s.CreateBuffer([]float32{0, 0, 1, 1})
		s.VertexAttribPointer(s.AttribLocation(p, gfx.AttribPosition), buf, 2)
		if _, _, err := s.Assemble(0, 4); err == nil {
			t.Fatalf("expected error for 4 vertices from a 2-vertex buffer")
		}
	})
}

func TestMat4DefaultsToIdentity(t *testing.T) {
	s, p := linkFlat(t)
	buf := s.CreateBuffer([]float32{0.25, -0.75})
	s.VertexAttribPointer(s.AttribLocation(p, gfx.AttribPosition), buf, 2)
	clip, _, err := s.Assemble(0, 1)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if clip[0] != (mgl32.Vec4{0.25, -0.75, 0, 1}) {
		t.Fatalf("expected untransformed vertex, got %v", clip[0])
	}
}
