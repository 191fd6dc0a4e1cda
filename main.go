package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/boxfall/common"
)

func main() {
	sceneName := flag.String("scene", "scene.yaml", "scene spec in prefabs/ (basename, .yaml optional)")
	layout := flag.String("layout", "", "layout script in prefabs/scripts/ whose boxes are added to the scene")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	watch := flag.Bool("watch", false, "rebuild the scene when files under prefabs/ change")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("boxfall")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	game, err := NewGame(ctx, GameOptions{
		Scene:  *sceneName,
		Layout: *layout,
		Debug:  *debug,
		Watch:  *watch,
	})
	if err != nil {
		log.Fatalf("setup failed: %v", err)
	}

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal(err)
	}
}
