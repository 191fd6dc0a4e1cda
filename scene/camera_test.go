package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/boxfall/prefabs"
)

func TestDefaultCameraMapsWorldToClip(t *testing.T) {
	m := DefaultCamera().Matrix()
	cases := []struct {
		name         string
		world        mgl32.Vec2
		clipX, clipY float32
	}{
		{"top_left", mgl32.Vec2{0, 0}, -1, 1},
		{"bottom_right", mgl32.Vec2{500, 500}, 1, -1},
		{"centre", mgl32.Vec2{250, 250}, 0, 0},
		{"ground_top", mgl32.Vec2{250, 450}, 0, -0.8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := m.Mul4x1(mgl32.Vec4{c.world.X(), c.world.Y(), 0, 1})
			if !near(p.X(), c.clipX) || !near(p.Y(), c.clipY) || !near(p.W(), 1) {
				t.Fatalf("expected (%v,%v), got %v", c.clipX, c.clipY, p)
			}
		})
	}
}

func TestCameraFromSpec(t *testing.T) {
	t.Run("zero_is_default", func(t *testing.T) {
		if got := CameraFromSpec(prefabs.CameraSpec{}); got != DefaultCamera() {
			t.Fatalf("expected default camera, got %+v", got)
		}
	})

	t.Run("custom_box", func(t *testing.T) {
		cam := CameraFromSpec(prefabs.CameraSpec{Left: 0, Right: 1000, Bottom: 1000, Top: 0, Near: 10, Far: -10})
		p := cam.Matrix().Mul4x1(mgl32.Vec4{1000, 1000, 0, 1})
		if !near(p.X(), 1) || !near(p.Y(), -1) {
			t.Fatalf("expected (1,-1), got %v", p)
		}
		if cam.Eye != DefaultCamera().Eye {
			t.Fatalf("missing eye should keep the default")
		}
	})

	t.Run("spec_round_trip", func(t *testing.T) {
		cam := DefaultCamera()
		if got := CameraFromSpec(cam.Spec()); got != cam {
			t.Fatalf("expected %+v, got %+v", cam, got)
		}
	})
}
