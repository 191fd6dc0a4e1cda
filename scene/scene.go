// Package scene runs a fixed set of physics-driven rects: a physics loop that
// steps the world and refreshes poses, and a render loop that draws them.
package scene

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/boxfall/gfx"
	"github.com/milk9111/boxfall/physics"
	"github.com/milk9111/boxfall/prefabs"
)

// DefaultClearColor is used when a spec leaves clear_color unset.
var DefaultClearColor = prefabs.YAMLColor{R: 0.8, G: 0.937, B: 0.937}

type Option func(*Scene)

// WithClock replaces time.Now for the physics cadence.
func WithClock(now func() time.Time) Option {
	return func(s *Scene) {
		s.now = now
	}
}

// Scene owns one physics world and the rects registered into it. It is not
// safe for concurrent use; Update and Render are expected on one goroutine.
type Scene struct {
	name    string
	ctx     *gfx.Context
	camera  Camera
	viewMat mgl32.Mat4
	clear   prefabs.YAMLColor
	physics prefabs.PhysicsSpec

	world *physics.World
	rects []*Rect
	clock *FixedStep
	now   func() time.Time

	paused  bool
	stopped bool
}

// New builds the world and every rect in spec order. Spec order is draw order.
func New(ctx *gfx.Context, spec prefabs.SceneSpec, opts ...Option) (*Scene, error) {
	if ctx == nil || ctx.Device() == nil {
		return nil, ErrNoContext
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{
		name:    spec.Name,
		ctx:     ctx,
		camera:  CameraFromSpec(spec.Camera),
		clear:   DefaultClearColor,
		physics: spec.Physics,
	}
	for _, opt := range opts {
		opt(s)
	}
	if spec.ClearColor != nil {
		s.clear = *spec.ClearColor
	}
	s.viewMat = s.camera.Matrix()

	cfg := physicsConfig(spec.Physics)
	s.world = physics.NewWorld(cfg)
	interval := time.Duration(s.world.Config().Step * float64(time.Second))
	s.clock = NewFixedStep(interval, spec.Physics.MaxSteps, s.now)

	dev := ctx.Device()
	dev.ClearColor(s.clear.R, s.clear.G, s.clear.B, 1)

	s.rects = make([]*Rect, 0, len(spec.Boxes))
	for i, b := range spec.Boxes {
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("box-%d", i)
		}
		r, err := NewRect(dev, ctx.Program(), s.world, RectDef{
			Name:     name,
			X:        b.X,
			Y:        b.Y,
			Width:    b.Width,
			Height:   b.Height,
			Rotation: b.Rotation,
			Color:    mgl32.Vec3{b.Color.R, b.Color.G, b.Color.B},
			Static:   b.Static,
		})
		if err != nil {
			return nil, err
		}
		s.rects = append(s.rects, r)
	}

	log.Printf("scene: %s ready with %d rects (step %v)", s.name, len(s.rects), interval)
	return s, nil
}

func physicsConfig(p prefabs.PhysicsSpec) physics.Config {
	cfg := physics.DefaultConfig()
	if len(p.Gravity) == 2 {
		cfg.GravityX, cfg.GravityY = p.Gravity[0], p.Gravity[1]
	}
	if p.Iterations > 0 {
		cfg.Iterations = p.Iterations
	}
	if p.IntervalMS > 0 {
		cfg.Step = p.IntervalMS / 1000
	}
	if p.Density > 0 {
		cfg.Density = p.Density
	}
	if p.Friction != nil {
		cfg.Friction = *p.Friction
	}
	cfg.Elasticity = p.Elasticity
	return cfg
}

// Tick is one physics-loop invocation: step the world, then refresh every
// dynamic rect.
func (s *Scene) Tick() {
	if s.stopped {
		return
	}
	s.world.Step()
	for _, r := range s.rects {
		if !r.Static() {
			r.RefreshPose()
		}
	}
}

// Update runs the physics ticks owed since the last call and returns how many ran.
func (s *Scene) Update() int {
	if s.stopped || s.paused {
		return 0
	}
	n := s.clock.Due()
	for i := 0; i < n; i++ {
		s.Tick()
	}
	return n
}

// Render is one render-loop invocation: clear, then draw every rect in order.
func (s *Scene) Render() {
	if s.stopped {
		return
	}
	dev := s.ctx.Device()
	dev.Clear()
	for _, r := range s.rects {
		r.Draw(s.viewMat)
	}
}

// Start draws the first frame and starts the physics clock.
func (s *Scene) Start() {
	s.Render()
	s.clock.Reset()
}

// Stop ends both loops. Update and Render do nothing afterwards.
func (s *Scene) Stop() {
	s.stopped = true
}

func (s *Scene) Stopped() bool {
	return s.stopped
}

// SetPaused halts or resumes physics. Resuming does not replay paused time.
func (s *Scene) SetPaused(paused bool) {
	if s.paused && !paused {
		s.clock.Reset()
	}
	s.paused = paused
}

func (s *Scene) Paused() bool {
	return s.paused
}

func (s *Scene) Name() string {
	return s.name
}

func (s *Scene) Rects() []*Rect {
	return s.rects
}

func (s *Scene) Camera() Camera {
	return s.camera
}

// CameraMatrix is the projection * view matrix every rect is drawn with.
func (s *Scene) CameraMatrix() mgl32.Mat4 {
	return s.viewMat
}

func (s *Scene) World() *physics.World {
	return s.world
}

// Snapshot describes the scene as it is now. Boxes carry their current poses
// and layout output is already folded into them.
func (s *Scene) Snapshot() prefabs.SceneSpec {
	clear := s.clear
	spec := prefabs.SceneSpec{
		Name:       s.name,
		Surface:    s.ctx.ID(),
		ClearColor: &clear,
		Camera:     s.camera.Spec(),
		Physics:    s.physics,
		Boxes:      make([]prefabs.BoxSpec, 0, len(s.rects)),
	}
	for _, r := range s.rects {
		p := r.Pose()
		w, h := r.Size()
		c := r.Color()
		spec.Boxes = append(spec.Boxes, prefabs.BoxSpec{
			Name:     r.Name(),
			X:        p.X,
			Y:        p.Y,
			Width:    w,
			Height:   h,
			Rotation: p.Angle,
			Color:    prefabs.YAMLColor{R: c[0], G: c[1], B: c[2]},
			Static:   r.Static(),
		})
	}
	return spec
}
