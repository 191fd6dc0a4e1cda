package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/boxfall/common"
	"github.com/milk9111/boxfall/prefabs"
)

// Camera is an orthographic box viewed from Eye.
type Camera struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
	Eye         mgl32.Vec3
	Center      mgl32.Vec3
	Up          mgl32.Vec3
}

// DefaultCamera maps world pixels one to one onto the base surface, y down.
func DefaultCamera() Camera {
	return Camera{
		Left:   0,
		Right:  common.BaseWidth,
		Bottom: common.BaseHeight,
		Top:    0,
		Near:   100,
		Far:    -100,
		Eye:    mgl32.Vec3{0, 0, 50},
		Center: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
	}
}

// Matrix returns projection * view.
func (c Camera) Matrix() mgl32.Mat4 {
	proj := mgl32.Ortho(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
	view := mgl32.LookAtV(c.Eye, c.Center, c.Up)
	return proj.Mul4(view)
}

// CameraFromSpec fills the camera from spec, falling back to DefaultCamera
// for an empty box or missing vectors.
func CameraFromSpec(spec prefabs.CameraSpec) Camera {
	cam := DefaultCamera()
	if !spec.IsZero() {
		cam.Left, cam.Right = float32(spec.Left), float32(spec.Right)
		cam.Bottom, cam.Top = float32(spec.Bottom), float32(spec.Top)
		cam.Near, cam.Far = float32(spec.Near), float32(spec.Far)
	}
	if v, ok := vec3(spec.Eye); ok {
		cam.Eye = v
	}
	if v, ok := vec3(spec.Center); ok {
		cam.Center = v
	}
	if v, ok := vec3(spec.Up); ok {
		cam.Up = v
	}
	return cam
}

// Spec is the inverse of CameraFromSpec.
func (c Camera) Spec() prefabs.CameraSpec {
	return prefabs.CameraSpec{
		Left:   float64(c.Left),
		Right:  float64(c.Right),
		Bottom: float64(c.Bottom),
		Top:    float64(c.Top),
		Near:   float64(c.Near),
		Far:    float64(c.Far),
		Eye:    floats(c.Eye),
		Center: floats(c.Center),
		Up:     floats(c.Up),
	}
}

func vec3(v []float64) (mgl32.Vec3, bool) {
	if len(v) != 3 {
		return mgl32.Vec3{}, false
	}
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}, true
}

func floats(v mgl32.Vec3) []float64 {
	return []float64{float64(v[0]), float64(v[1]), float64(v[2])}
}
