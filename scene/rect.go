package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/boxfall/gfx"
	"github.com/milk9111/boxfall/physics"
)

var (
	ErrNoContext   = errors.New("scene: no drawing context")
	ErrNoWorld     = errors.New("scene: no physics world")
	ErrInvalidSize = errors.New("scene: rect size must be positive")
)

// unitQuad is a unit square centred on the origin, in triangle-strip order.
var unitQuad = []float32{
	-0.5, 0.5,
	0.5, 0.5,
	-0.5, -0.5,
	0.5, -0.5,
}

const quadVertices = 4

// RectDef describes a rect at construction time. X and Y are the centre.
type RectDef struct {
	Name          string
	X, Y          float64
	Width, Height float64
	Rotation      float64
	Color         mgl32.Vec3
	Static        bool
}

// Rect is one drawable box backed by a physics body. Its pose only changes
// through RefreshPose.
type Rect struct {
	name   string
	width  float64
	height float64
	color  mgl32.Vec3
	static bool
	pose   physics.Pose

	world *physics.World
	body  physics.BodyID

	dev      gfx.Device
	quad     gfx.Buffer
	position gfx.Location
	mvp      gfx.Location
	tint     gfx.Location
}

// NewRect uploads the unit quad, resolves the flat program's inputs and adds
// a matching body to world.
func NewRect(dev gfx.Device, prog gfx.Program, world *physics.World, def RectDef) (*Rect, error) {
	if dev == nil {
		return nil, ErrNoContext
	}
	if world == nil {
		return nil, ErrNoWorld
	}
	if def.Width <= 0 || def.Height <= 0 {
		return nil, fmt.Errorf("%w: %s is %vx%v", ErrInvalidSize, def.Name, def.Width, def.Height)
	}
	if !dev.IsProgram(prog) {
		return nil, fmt.Errorf("scene: rect %s: %w", def.Name, gfx.ErrInvalidProgram)
	}

	position := dev.AttribLocation(prog, gfx.AttribPosition)
	if !position.Valid() {
		return nil, fmt.Errorf("scene: rect %s: %w: %s", def.Name, gfx.ErrUnknownAttribute, gfx.AttribPosition)
	}
	mvp := dev.UniformLocation(prog, gfx.UniformMVP)
	if !mvp.Valid() {
		return nil, fmt.Errorf("scene: rect %s: %w: %s", def.Name, gfx.ErrUnknownUniform, gfx.UniformMVP)
	}
	tint := dev.UniformLocation(prog, gfx.UniformColor)
	if !tint.Valid() {
		return nil, fmt.Errorf("scene: rect %s: %w: %s", def.Name, gfx.ErrUnknownUniform, gfx.UniformColor)
	}

	body := world.AddBox(physics.BoxDef{
		X:      def.X,
		Y:      def.Y,
		Width:  def.Width,
		Height: def.Height,
		Angle:  def.Rotation,
		Static: def.Static,
	})
	if !body.Valid() {
		return nil, fmt.Errorf("scene: rect %s: physics body not created", def.Name)
	}

	return &Rect{
		name:     def.Name,
		width:    def.Width,
		height:   def.Height,
		color:    def.Color,
		static:   def.Static,
		pose:     physics.Pose{X: def.X, Y: def.Y, Angle: def.Rotation},
		world:    world,
		body:     body,
		dev:      dev,
		quad:     dev.CreateBuffer(unitQuad),
		position: position,
		mvp:      mvp,
		tint:     tint,
	}, nil
}

// RefreshPose copies the body's current position and angle.
func (r *Rect) RefreshPose() {
	if p, ok := r.world.Pose(r.body); ok {
		r.pose = p
	}
}

func (r *Rect) Pose() physics.Pose {
	return r.pose
}

func (r *Rect) Size() (float64, float64) {
	return r.width, r.height
}

func (r *Rect) Color() mgl32.Vec3 {
	return r.color
}

func (r *Rect) Static() bool {
	return r.static
}

func (r *Rect) Body() physics.BodyID {
	return r.body
}

func (r *Rect) Name() string {
	return r.name
}

// ModelMatrix is translate(pose) * rotateZ(angle) * scale(w, h, 1).
func (r *Rect) ModelMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(float32(r.pose.X), float32(r.pose.Y), 0)
	rot := mgl32.HomogRotate3DZ(float32(r.pose.Angle))
	s := mgl32.Scale3D(float32(r.width), float32(r.height), 1)
	return t.Mul4(rot).Mul4(s)
}

// Draw issues the rect's draw call with camera * model as the MVP matrix.
func (r *Rect) Draw(camera mgl32.Mat4) {
	r.dev.VertexAttribPointer(r.position, r.quad, 2)
	r.dev.UniformMatrix4(r.mvp, camera.Mul4(r.ModelMatrix()))
	r.dev.Uniform3(r.tint, r.color)
	r.dev.DrawArrays(gfx.TriangleStrip, 0, quadVertices)
}
