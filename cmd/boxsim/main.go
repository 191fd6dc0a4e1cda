// Command boxsim runs a scene headless on a CPU surface and prints the final
// poses as a scene spec.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/milk9111/boxfall/common"
	"github.com/milk9111/boxfall/gfx"
	"github.com/milk9111/boxfall/gfx/ggdev"
	"github.com/milk9111/boxfall/prefabs"
	"github.com/milk9111/boxfall/scene"
	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"
)

type options struct {
	scene  string
	layout string
	ticks  int
	rest   float64
	png    string
	quiet  bool
}

func main() {
	var opts options
	flag.StringVar(&opts.scene, "scene", "scene.yaml", "scene spec in prefabs/ (basename, .yaml optional)")
	flag.StringVar(&opts.layout, "layout", "", "layout script in prefabs/scripts/ whose boxes are added to the scene")
	flag.IntVar(&opts.ticks, "ticks", 600, "physics ticks to run")
	flag.Float64Var(&opts.rest, "rest", 0, "stop early once every dynamic box is slower than this many px/s (0 disables)")
	flag.StringVar(&opts.png, "png", "", "write the last frame to this PNG file")
	flag.BoolVar(&opts.quiet, "q", false, "hide the progress bar")
	verbose := flag.Bool("v", false, "log renderer diagnostics")
	flag.Parse()

	if *verbose {
		gg.SetLogger(slog.Default())
	}

	if err := run(opts, os.Stdout); err != nil {
		log.Printf("boxsim: %v", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer) error {
	if opts.ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", opts.ticks)
	}

	spec, err := prefabs.LoadSceneSpec(opts.scene)
	if err != nil {
		return err
	}
	if opts.layout != "" {
		if err := spec.AppendLayout(opts.layout, nil); err != nil {
			return err
		}
	}

	surface := ggdev.NewOffscreen(common.BaseWidth, common.BaseHeight)
	defer surface.Close()

	ctx, err := gfx.Init(gfx.Surfaces{spec.Surface: surface}, spec.Surface)
	if err != nil {
		return err
	}
	s, err := scene.New(ctx, *spec)
	if err != nil {
		return err
	}
	s.Start()

	ran := simulate(s, opts)
	log.Printf("boxsim: %s ran %d ticks", s.Name(), ran)

	if opts.png != "" {
		s.Render()
		if err := surface.SavePNG(opts.png); err != nil {
			return fmt.Errorf("save %s: %w", opts.png, err)
		}
		log.Printf("boxsim: wrote %s", opts.png)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(s.Snapshot()); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

// simulate ticks the scene directly, without wall-clock pacing, and returns
// how many ticks ran.
func simulate(s *scene.Scene, opts options) int {
	var bar *progressbar.ProgressBar
	if !opts.quiet {
		bar = progressbar.Default(int64(opts.ticks), "simulating")
		defer bar.Finish()
	}

	for i := 0; i < opts.ticks; i++ {
		s.Tick()
		if bar != nil {
			_ = bar.Add(1)
		}
		if opts.rest > 0 && s.World().Resting(opts.rest) {
			return i + 1
		}
	}
	return opts.ticks
}
