// Package ggdev renders gfx programs into an offscreen gogpu/gg context.
package ggdev

import (
	"fmt"
	"image"
	"log"

	"github.com/gogpu/gg"
	"github.com/milk9111/boxfall/gfx"
)

// Offscreen is a CPU-rasterised surface for headless runs.
type Offscreen struct {
	width  int
	height int
	dc     *gg.Context
	dev    *Device
}

func NewOffscreen(width, height int) *Offscreen {
	return &Offscreen{width: width, height: height}
}

func (o *Offscreen) Size() (int, int) {
	return o.width, o.height
}

func (o *Offscreen) Device() (gfx.Device, error) {
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("ggdev: bad surface size %dx%d", o.width, o.height)
	}
	if o.dev == nil {
		o.dc = gg.NewContext(o.width, o.height)
		o.dev = &Device{dc: o.dc}
	}
	return o.dev, nil
}

// Image returns the rendered pixels, or nil before Device was called.
func (o *Offscreen) Image() image.Image {
	if o.dc == nil {
		return nil
	}
	return o.dc.Image()
}

func (o *Offscreen) SavePNG(path string) error {
	if o.dc == nil {
		return fmt.Errorf("ggdev: nothing rendered")
	}
	return o.dc.SavePNG(path)
}

func (o *Offscreen) Close() error {
	if o.dc == nil {
		return nil
	}
	return o.dc.Close()
}

// Device fills each primitive with its program's FillFunc colour.
type Device struct {
	gfx.State

	dc      *gg.Context
	indices []uint16
}

func (d *Device) CompileProgram(src gfx.ProgramSource) (gfx.Program, error) {
	if src.Fill == nil {
		return 0, fmt.Errorf("ggdev: program %s has no fill stage", src.Name)
	}
	return d.Link(src, nil), nil
}

func (d *Device) Clear() {
	c := d.ClearRGBA()
	d.dc.ClearWithColor(gg.RGBA2(float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3])))
}

func (d *Device) DrawArrays(mode gfx.Primitive, first, count int) {
	clip, prog, err := d.Assemble(first, count)
	if err != nil {
		log.Printf("ggdev: draw %s: %v", mode, err)
		return
	}

	d.indices = gfx.Indices(mode, len(clip), d.indices[:0])
	if len(d.indices) == 0 {
		return
	}

	fill := prog.Source().Fill(prog.Uniforms())
	d.dc.SetRGBA(float64(fill[0]), float64(fill[1]), float64(fill[2]), float64(fill[3]))

	w, h := d.dc.Width(), d.dc.Height()
	for i := 0; i+2 < len(d.indices); i += 3 {
		for j, idx := range d.indices[i : i+3] {
			x, y := gfx.ClipToPixel(clip[idx], w, h)
			if j == 0 {
				d.dc.MoveTo(float64(x), float64(y))
			} else {
				d.dc.LineTo(float64(x), float64(y))
			}
		}
		d.dc.ClosePath()
	}
	if err := d.dc.Fill(); err != nil {
		log.Printf("ggdev: fill: %v", err)
	}
}
