package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcherReportsSettledChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	target := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte("name: x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case c := <-w.Changes:
		if c.Path != target || c.Kind != SpecChanged {
			t.Fatalf("unexpected change %+v", c)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported for %s", target)
	}

	select {
	case c := <-w.Changes:
		t.Fatalf("burst should coalesce, got extra %+v", c)
	case <-time.After(3 * settle):
	}
}

func TestNewWatcherWithoutDirs(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrNothingToWatch) {
		t.Fatalf("expected ErrNothingToWatch, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		event fsnotify.Event
		want  ChangeKind
	}{
		{"spec_write", fsnotify.Event{Name: "scene.yaml", Op: fsnotify.Write}, SpecChanged},
		{"spec_upper", fsnotify.Event{Name: "SCENE.YML", Op: fsnotify.Create}, SpecChanged},
		{"script_rename", fsnotify.Event{Name: "scripts/pyramid.tengo", Op: fsnotify.Rename}, ScriptChanged},
		{"script_chmod", fsnotify.Event{Name: "scripts/pyramid.tengo", Op: fsnotify.Chmod}, 0},
		{"other_file", fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := classify(c.event); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if _, ok := <-w.Changes; ok {
		t.Fatalf("Changes should be closed")
	}
}
