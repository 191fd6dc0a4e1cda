package prefabs

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a file must stay quiet before its change is reported.
// Editors often write a file several times per save.
const settle = 100 * time.Millisecond

var ErrNothingToWatch = errors.New("prefabs: no watchable directory")

type ChangeKind int

const (
	SpecChanged ChangeKind = iota + 1
	ScriptChanged
)

func (k ChangeKind) String() string {
	switch k {
	case SpecChanged:
		return "spec"
	case ScriptChanged:
		return "script"
	default:
		return "unknown"
	}
}

// Change is one settled edit to a scene spec or layout script.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports settled prefab edits on Changes. A burst of writes to the
// same file yields one Change once the burst is over.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches every dir that exists. It fails only when none do.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watched := 0
	for _, dir := range dirs {
		if err := fsw.Add(dir); err == nil {
			watched++
		}
	}
	if watched == 0 {
		_ = fsw.Close()
		return nil, fmt.Errorf("%w: %s", ErrNothingToWatch, strings.Join(dirs, ", "))
	}

	w := &Watcher{
		fs:      fsw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes Changes and Errors. It is safe to call twice.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.quit)
		err = w.fs.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := make(map[string]ChangeKind)
	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			kind := classify(event)
			if kind == 0 {
				continue
			}
			pending[event.Name] = kind
			timer.Reset(settle)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-timer.C:
			for _, path := range slices.Sorted(maps.Keys(pending)) {
				select {
				case w.Changes <- Change{Path: path, Kind: pending[path]}:
				case <-w.quit:
					return
				}
			}
			clear(pending)
		case <-w.quit:
			return
		}
	}
}

func classify(event fsnotify.Event) ChangeKind {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return 0
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".yaml", ".yml":
		return SpecChanged
	case ".tengo":
		return ScriptChanged
	default:
		return 0
	}
}
