// Package ebitendev renders gfx programs with ebiten.
package ebitendev

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/boxfall/common"
	"github.com/milk9111/boxfall/gfx"
)

// Window is the game window's drawing surface. Drawing goes to an offscreen
// canvas that the game blits to the screen every frame.
type Window struct {
	width  int
	height int
	canvas *ebiten.Image
	dev    *Device
}

func NewWindow(width, height int) *Window {
	return &Window{width: width, height: height}
}

func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// Device returns the window's device, creating the canvas on first use.
func (w *Window) Device() (gfx.Device, error) {
	if w == nil {
		return nil, fmt.Errorf("ebitendev: nil window")
	}
	if w.width <= 0 || w.height <= 0 {
		return nil, fmt.Errorf("ebitendev: bad window size %dx%d", w.width, w.height)
	}
	if w.dev == nil {
		w.canvas = ebiten.NewImage(w.width, w.height)
		w.dev = &Device{target: w.canvas}
	}
	return w.dev, nil
}

// Canvas returns the image the device draws into, or nil before Device was called.
func (w *Window) Canvas() *ebiten.Image {
	return w.canvas
}

// Present draws the canvas onto screen, stretched to fit.
func (w *Window) Present(screen *ebiten.Image) {
	if w == nil || w.canvas == nil || screen == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	if sx, sy, ok := fitScale(w.width, w.height, screen.Bounds().Dx(), screen.Bounds().Dy()); ok {
		op.GeoM.Scale(sx, sy)
	}
	screen.DrawImage(w.canvas, op)
}

// fitScale returns the factors that stretch a w×h canvas onto a sw×sh
// screen, and false when no scaling is needed.
func fitScale(w, h, sw, sh int) (float64, float64, bool) {
	if w <= 0 || h <= 0 || (sw == w && sh == h) {
		return 1, 1, false
	}
	return float64(sw) / float64(w), float64(sh) / float64(h), true
}

// Device draws into an ebiten image with Kage fragment shaders.
type Device struct {
	gfx.State

	target   *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func (d *Device) CompileProgram(src gfx.ProgramSource) (gfx.Program, error) {
	if len(src.Fragment) == 0 {
		return 0, fmt.Errorf("ebitendev: program %s has no fragment source", src.Name)
	}
	shader, err := ebiten.NewShader(src.Fragment)
	if err != nil {
		return 0, fmt.Errorf("ebitendev: compile %s: %w", src.Name, err)
	}
	return d.Link(src, shader), nil
}

func (d *Device) Clear() {
	c := d.ClearRGBA()
	d.target.Fill(color.NRGBA{
		R: toByte(c[0]),
		G: toByte(c[1]),
		B: toByte(c[2]),
		A: toByte(c[3]),
	})
}

func (d *Device) DrawArrays(mode gfx.Primitive, first, count int) {
	clip, prog, err := d.Assemble(first, count)
	if err != nil {
		log.Printf("ebitendev: draw %s: %v", mode, err)
		return
	}
	shader, ok := prog.Data().(*ebiten.Shader)
	if !ok || shader == nil {
		log.Printf("ebitendev: draw %s: program %s has no shader", mode, prog.Source().Name)
		return
	}

	w, h := d.target.Bounds().Dx(), d.target.Bounds().Dy()
	d.vertices = d.vertices[:0]
	for _, p := range clip {
		x, y := gfx.ClipToPixel(p, w, h)
		d.vertices = append(d.vertices, ebiten.Vertex{
			DstX:   x,
			DstY:   y,
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
	}
	d.indices = gfx.Indices(mode, len(d.vertices), d.indices[:0])
	if len(d.indices) == 0 {
		return
	}

	op := &ebiten.DrawTrianglesShaderOptions{
		Uniforms:  prog.KageUniforms(),
		AntiAlias: true,
	}
	d.target.DrawTrianglesShader(d.vertices, d.indices, shader, op)
}

func toByte(v float32) uint8 {
	return uint8(common.Clamp01(v)*0xff + 0.5)
}
