package main

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/boxfall/common"
	"github.com/milk9111/boxfall/gfx"
	"github.com/milk9111/boxfall/scene"
	"golang.org/x/image/colornames"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	debugLineWidth      = 1
)

// DrawPhysicsDebug outlines every shape in the scene's space, projected
// through the scene camera so outlines sit on the rendered rects.
func DrawPhysicsDebug(screen *ebiten.Image, s *scene.Scene) {
	if screen == nil || s == nil || s.World().Space() == nil {
		return
	}
	b := screen.Bounds()
	drawer := &physicsDebugDrawer{
		screen: screen,
		proj:   newProjector(s.CameraMatrix(), b.Dx(), b.Dy()),
	}
	cp.DrawSpace(s.World().Space(), drawer)
}

// projector maps world coordinates to screen pixels.
type projector struct {
	camera mgl32.Mat4
	width  int
	height int
}

func newProjector(camera mgl32.Mat4, width, height int) projector {
	return projector{camera: camera, width: width, height: height}
}

func (p projector) toScreen(v cp.Vector) (float32, float32) {
	clip := p.camera.Mul4x1(mgl32.Vec4{float32(v.X), float32(v.Y), 0, 1})
	return gfx.ClipToPixel(clip, p.width, p.height)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	proj   projector
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return toFColor(colornames.Lime)
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil || shape.Body() == nil {
		return toFColor(colornames.White)
	}
	switch {
	case shape.Body().GetType() == cp.BODY_STATIC:
		return toFColor(colornames.Deepskyblue)
	case shape.Body().IsSleeping():
		return toFColor(colornames.Gray)
	default:
		return toFColor(colornames.Orchid)
	}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return toFColor(colornames.Lightgray)
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return toFColor(colornames.Red)
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.proj.toScreen(a)
	x2, y2 := d.proj.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, debugLineWidth, toNRGBA(c), true)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toFColor(c color.RGBA) cp.FColor {
	return cp.FColor{R: float32(c.R) / 0xff, G: float32(c.G) / 0xff, B: float32(c.B) / 0xff, A: float32(c.A) / 0xff}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(common.Clamp01(c.R)*255 + 0.5),
		G: uint8(common.Clamp01(c.G)*255 + 0.5),
		B: uint8(common.Clamp01(c.B)*255 + 0.5),
		A: uint8(common.Clamp01(c.A)*255 + 0.5),
	}
}
