package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/boxfall/common"
	"github.com/milk9111/boxfall/gfx"
	"github.com/milk9111/boxfall/gfx/ebitendev"
	"github.com/milk9111/boxfall/prefabs"
	"github.com/milk9111/boxfall/scene"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

// watchDirs are the on-disk prefab locations Load and LoadScript prefer.
var watchDirs = []string{"prefabs", "prefabs/scripts"}

type GameOptions struct {
	Scene  string
	Layout string
	Debug  bool
	Watch  bool
}

// Game hosts the scene on ebiten: Update drives the physics loop and Draw the
// render loop. ebiten calls both from one goroutine.
type Game struct {
	ctx  context.Context
	opts GameOptions

	window *ebitendev.Window
	gfx    *gfx.Context
	scene  *scene.Scene

	pauseUI   *ebitenui.UI
	watcher   *prefabs.Watcher
	clipboard bool
	debug     bool
}

func NewGame(ctx context.Context, opts GameOptions) (*Game, error) {
	spec, err := loadScene(opts.Scene, opts.Layout)
	if err != nil {
		return nil, err
	}

	window := ebitendev.NewWindow(common.BaseWidth, common.BaseHeight)
	gctx, err := gfx.Init(gfx.Surfaces{common.SurfaceID: window}, spec.Surface)
	if err != nil {
		return nil, err
	}

	g := &Game{
		ctx:    ctx,
		opts:   opts,
		window: window,
		gfx:    gctx,
		debug:  opts.Debug,
	}
	if g.scene, err = g.newScene(spec); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher(watchDirs...)
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboard = true
	}

	return g, nil
}

func loadScene(name, layout string) (*prefabs.SceneSpec, error) {
	spec, err := prefabs.LoadSceneSpec(name)
	if err != nil {
		return nil, err
	}
	if layout != "" {
		if err := spec.AppendLayout(layout, nil); err != nil {
			return nil, err
		}
	}
	return spec, nil
}

func (g *Game) newScene(spec *prefabs.SceneSpec) (*scene.Scene, error) {
	if spec.Surface != g.gfx.ID() {
		return nil, fmt.Errorf("%w: %q", gfx.ErrSurfaceNotFound, spec.Surface)
	}
	s, err := scene.New(g.gfx, *spec)
	if err != nil {
		return nil, err
	}
	s.Start()
	return s, nil
}

// reload rebuilds the scene from disk. The running scene is kept on failure.
func (g *Game) reload(reason string) {
	spec, err := loadScene(g.opts.Scene, g.opts.Layout)
	if err != nil {
		log.Printf("reload (%s) failed: %v", reason, err)
		return
	}
	s, err := g.newScene(spec)
	if err != nil {
		log.Printf("reload (%s) failed: %v", reason, err)
		return
	}
	g.scene = s
	log.Printf("reloaded %s (%s)", g.opts.Scene, reason)
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	var changed *prefabs.Change
drain:
	for {
		select {
		case c, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				break drain
			}
			changed = &c
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				break drain
			}
			log.Printf("watch: %v", err)
		default:
			break drain
		}
	}
	if changed != nil {
		g.reload(fmt.Sprintf("%s %s changed", changed.Kind, filepath.Base(changed.Path)))
	}
}

func (g *Game) copySnapshot() {
	if !g.clipboard {
		return
	}
	data, err := yaml.Marshal(g.scene.Snapshot())
	if err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	log.Printf("copied %s snapshot (%d bytes)", g.scene.Name(), len(data))
}

func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if g.scene.Stopped() {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.scene.SetPaused(!g.scene.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copySnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload("restart")
	}
	g.drainWatcher()

	if g.scene.Paused() {
		g.pauseUI.Update()
	}
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Render()
	g.window.Present(screen)

	if g.debug {
		DrawPhysicsDebug(screen, g.scene)
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f    TPS: %.2f    Ticks: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), g.scene.World().Ticks()))
	}

	if g.scene.Paused() {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("watch: close: %v", err)
		}
	}
}
