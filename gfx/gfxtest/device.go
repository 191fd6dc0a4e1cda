// Package gfxtest provides a recording gfx.Device for tests.
package gfxtest

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/boxfall/gfx"
)

// Draw is one recorded DrawArrays call.
type Draw struct {
	Mode  gfx.Primitive
	First int
	Count int
	// Clip holds the vertex stage output for every drawn vertex.
	Clip  []mgl32.Vec4
	MVP   mgl32.Mat4
	Color mgl32.Vec3
	Err   error
}

// Device records what is drawn instead of rasterising it.
type Device struct {
	gfx.State

	// CompileErr, when set, is returned by CompileProgram.
	CompileErr error

	Buffers int
	Clears  int
	Draws   []Draw
}

func (d *Device) CreateBuffer(data []float32) gfx.Buffer {
	d.Buffers++
	return d.State.CreateBuffer(data)
}

func (d *Device) CompileProgram(src gfx.ProgramSource) (gfx.Program, error) {
	if d.CompileErr != nil {
		return 0, d.CompileErr
	}
	return d.Link(src, nil), nil
}

func (d *Device) Clear() {
	d.Clears++
}

func (d *Device) DrawArrays(mode gfx.Primitive, first, count int) {
	clip, prog, err := d.Assemble(first, count)
	draw := Draw{Mode: mode, First: first, Count: count, Clip: clip, Err: err}
	if prog != nil {
		u := prog.Uniforms()
		draw.MVP = u.Mat4(gfx.UniformMVP)
		draw.Color = u.Vec3(gfx.UniformColor)
	}
	d.Draws = append(d.Draws, draw)
}

// Reset forgets recorded clears and draws.
func (d *Device) Reset() {
	d.Clears = 0
	d.Draws = nil
}

var errNoDevice = errors.New("gfxtest: no device")

// Surface hands out Dev, or Err when set.
type Surface struct {
	Dev           *Device
	Err           error
	Width, Height int
}

func (s *Surface) Size() (int, int) {
	return s.Width, s.Height
}

func (s *Surface) Device() (gfx.Device, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Dev == nil {
		return nil, errNoDevice
	}
	return s.Dev, nil
}
