package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/boxfall/prefabs"
)

func TestRun(t *testing.T) {
	cases := []struct {
		name    string
		opts    options
		boxes   int
		wantErr bool
	}{
		{"default_scene", options{scene: "scene.yaml", ticks: 10, quiet: true}, 3, false},
		{"with_layout", options{scene: "scene", layout: "row", ticks: 5, quiet: true}, 8, false},
		{"pyramid", options{scene: "pyramid.yaml", ticks: 1, quiet: true}, 16, false},
		{"missing_scene", options{scene: "nope.yaml", quiet: true}, 0, true},
		{"missing_layout", options{scene: "scene.yaml", layout: "nope", quiet: true}, 0, true},
		{"negative_ticks", options{scene: "scene.yaml", ticks: -1, quiet: true}, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(c.opts, &out)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			snap, err := prefabs.ParseSceneSpec(out.Bytes())
			if err != nil {
				t.Fatalf("output is not a scene spec: %v\n%s", err, out.String())
			}
			if len(snap.Boxes) != c.boxes {
				t.Fatalf("expected %d boxes, got %d", c.boxes, len(snap.Boxes))
			}
		})
	}
}

func TestRunSettlesAndWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	var out bytes.Buffer
	err := run(options{scene: "scene.yaml", ticks: 2000, rest: 1, png: path, quiet: true}, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	snap, err := prefabs.ParseSceneSpec(out.Bytes())
	if err != nil {
		t.Fatalf("output is not a scene spec: %v", err)
	}
	for _, b := range snap.Boxes {
		if b.Static {
			continue
		}
		if b.Y+b.Height/2 > 451 {
			t.Fatalf("box %s sank below the ground top: y=%v", b.Name, b.Y)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("png missing: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 500 || b.Dy() != 500 {
		t.Fatalf("unexpected frame size %v", b)
	}
	// Inside the ground.
	r, g, bl, _ := img.At(250, 475).RGBA()
	if r>>8 > 60 || g>>8 < 140 || bl>>8 > 110 {
		t.Fatalf("expected ground green at (250,475), got %d,%d,%d", r>>8, g>>8, bl>>8)
	}
}
