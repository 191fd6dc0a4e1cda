package gfx

import (
	"errors"
	"fmt"
	"log"
)

var (
	ErrSurfaceNotFound  = errors.New("gfx: surface not found")
	ErrNoDevice         = errors.New("gfx: drawing device unavailable")
	ErrInvalidProgram   = errors.New("gfx: invalid program")
	ErrUnknownAttribute = errors.New("gfx: unknown attribute")
	ErrUnknownUniform   = errors.New("gfx: unknown uniform")
	ErrUnboundAttribute = errors.New("gfx: attribute not bound")
)

// Surface is a drawing target that can hand out a Device.
type Surface interface {
	Size() (width, height int)
	Device() (Device, error)
}

// Surfaces maps well-known identifiers to drawing surfaces.
type Surfaces map[string]Surface

// Context is the one drawing surface and flat program shared by everything
// that renders. It is created once by Init and passed to its users.
type Context struct {
	id      string
	surface Surface
	device  Device
	program Program
}

// Init binds the surface registered as id, obtains its device and compiles
// FlatProgram on it.
func Init(surfaces Surfaces, id string) (*Context, error) {
	surface, ok := surfaces[id]
	if !ok || surface == nil {
		return nil, fmt.Errorf("%w: %q", ErrSurfaceNotFound, id)
	}

	dev, err := surface.Device()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrNoDevice, id, err)
	}
	if dev == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoDevice, id)
	}

	prog, err := dev.CompileProgram(FlatProgram)
	if err != nil {
		return nil, fmt.Errorf("gfx: compile %s program: %w", FlatProgram.Name, err)
	}
	dev.UseProgram(prog)

	w, h := surface.Size()
	log.Printf("gfx: surface %q ready (%dx%d)", id, w, h)

	return &Context{id: id, surface: surface, device: dev, program: prog}, nil
}

func (c *Context) ID() string {
	return c.id
}

func (c *Context) Surface() Surface {
	return c.surface
}

func (c *Context) Device() Device {
	if c == nil {
		return nil
	}
	return c.device
}

// Program returns the compiled FlatProgram.
func (c *Context) Program() Program {
	if c == nil {
		return 0
	}
	return c.program
}
