package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/boxfall/common"
)

// Config tunes the simulation. Zero fields fall back to DefaultConfig.
type Config struct {
	GravityX   float64
	GravityY   float64
	Iterations int
	// Step is the simulated time in seconds one Step call advances.
	Step       float64
	Density    float64
	// Friction is per shape. Chipmunk multiplies the values of the two
	// shapes in contact.
	Friction   float64
	Elasticity float64
}

func DefaultConfig() Config {
	return Config{
		GravityY:   common.Gravity,
		Iterations: 10,
		Step:       common.PhysicsInterval.Seconds(),
		Density:    0.001,
		Friction:   0.3,
	}
}

// BodyID is an opaque handle to a body owned by a World.
type BodyID int

func (id BodyID) Valid() bool {
	return id > 0
}

// BoxDef describes a rectangle centred on (X, Y).
type BoxDef struct {
	X, Y          float64
	Width, Height float64
	Angle         float64
	Static        bool
}

// Pose is a body's position and rotation at an instant.
type Pose struct {
	X, Y  float64
	Angle float64
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

// World owns the Chipmunk space and every body added to it.
type World struct {
	cfg    Config
	space  *cp.Space
	bodies []bodyInfo
	ticks  int
}

func NewWorld(cfg Config) *World {
	def := DefaultConfig()
	if cfg.Iterations <= 0 {
		cfg.Iterations = def.Iterations
	}
	if cfg.Step <= 0 {
		cfg.Step = def.Step
	}
	if cfg.Density <= 0 {
		cfg.Density = def.Density
	}

	space := cp.NewSpace()
	space.Iterations = uint(cfg.Iterations)
	space.SetGravity(cp.Vector{X: cfg.GravityX, Y: cfg.GravityY})

	return &World{cfg: cfg, space: space}
}

func (w *World) Config() Config {
	return w.cfg
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddBox creates a box body, inserts it into the space and returns its handle.
func (w *World) AddBox(def BoxDef) BodyID {
	if w == nil || w.space == nil || def.Width <= 0 || def.Height <= 0 {
		return 0
	}

	var body *cp.Body
	if def.Static {
		body = cp.NewStaticBody()
	} else {
		mass := def.Width * def.Height * w.cfg.Density
		body = cp.NewBody(mass, cp.MomentForBox(mass, def.Width, def.Height))
	}
	body.SetPosition(cp.Vector{X: def.X, Y: def.Y})
	body.SetAngle(def.Angle)
	w.space.AddBody(body)

	shape := cp.NewBox(body, def.Width, def.Height, 0)
	shape.SetFriction(w.cfg.Friction)
	shape.SetElasticity(w.cfg.Elasticity)
	w.space.AddShape(shape)

	w.bodies = append(w.bodies, bodyInfo{body: body, shape: shape, static: def.Static})
	return BodyID(len(w.bodies))
}

func (w *World) info(id BodyID) (bodyInfo, bool) {
	if w == nil || !id.Valid() || int(id) > len(w.bodies) {
		return bodyInfo{}, false
	}
	return w.bodies[id-1], true
}

// Pose reads the body's current centre and angle.
func (w *World) Pose(id BodyID) (Pose, bool) {
	info, ok := w.info(id)
	if !ok {
		return Pose{}, false
	}
	pos := info.body.Position()
	return Pose{X: pos.X, Y: pos.Y, Angle: info.body.Angle()}, true
}

func (w *World) IsStatic(id BodyID) bool {
	info, ok := w.info(id)
	return ok && info.static
}

// Step advances the simulation by Config.Step seconds.
func (w *World) Step() {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(w.cfg.Step)
	w.ticks++
}

// Ticks reports how many times Step has run.
func (w *World) Ticks() int {
	return w.ticks
}

func (w *World) Len() int {
	return len(w.bodies)
}

// Resting reports whether every dynamic body moves slower than eps pixels per second.
func (w *World) Resting(eps float64) bool {
	for _, info := range w.bodies {
		if info.static {
			continue
		}
		v := info.body.Velocity()
		if math.Hypot(v.X, v.Y) > eps {
			return false
		}
	}
	return true
}
