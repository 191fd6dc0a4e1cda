package scene

import (
	"testing"
	"time"

	"github.com/milk9111/boxfall/common"
	"github.com/milk9111/boxfall/gfx"
	"github.com/milk9111/boxfall/gfx/gfxtest"
	"github.com/milk9111/boxfall/physics"
	"github.com/milk9111/boxfall/prefabs"
)

func newTestContext(t *testing.T) (*gfx.Context, *gfxtest.Device) {
	t.Helper()
	dev := &gfxtest.Device{}
	surfaces := gfx.Surfaces{
		common.SurfaceID: &gfxtest.Surface{Dev: dev, Width: common.BaseWidth, Height: common.BaseHeight},
	}
	ctx, err := gfx.Init(surfaces, common.SurfaceID)
	if err != nil {
		t.Fatalf("gfx.Init failed: %v", err)
	}
	return ctx, dev
}

func newTestRect(t *testing.T, def RectDef) (*Rect, *physics.World, *gfxtest.Device) {
	t.Helper()
	ctx, dev := newTestContext(t)
	world := physics.NewWorld(physics.DefaultConfig())
	r, err := NewRect(ctx.Device(), ctx.Program(), world, def)
	if err != nil {
		t.Fatalf("NewRect failed: %v", err)
	}
	return r, world, dev
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

var (
	groundBox = prefabs.BoxSpec{Name: "ground", X: 250, Y: 475, Width: 500, Height: 50, Color: prefabs.YAMLColor{R: 0.149, G: 0.631, B: 0.352}, Static: true}
	smallBox  = prefabs.BoxSpec{Name: "small", X: 225, Y: 100, Width: 50, Height: 50, Color: prefabs.YAMLColor{R: 0.447, G: 0.631, B: 0.149}}
)

func dropSpec() prefabs.SceneSpec {
	return prefabs.SceneSpec{
		Name:  "drop",
		Boxes: []prefabs.BoxSpec{smallBox, groundBox},
	}
}
