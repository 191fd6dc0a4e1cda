package common

import "time"

const (
	BaseWidth  = 500
	BaseHeight = 500
)

// SurfaceID is the well-known name of the drawing surface the game renders into.
const SurfaceID = "renderCanvas"

const (
	// PhysicsInterval is the wall-clock spacing between physics ticks.
	PhysicsInterval = 15 * time.Millisecond
	// Gravity is the downward acceleration in pixels per second squared.
	Gravity = 1000.0
)
