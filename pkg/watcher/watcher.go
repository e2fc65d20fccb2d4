// Package watcher copies an externally edited theme document into the
// application's writable directory whenever it changes on disk and announces
// the change on the event bus.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/kcaldas/themekit/pkg/events"
	"github.com/kcaldas/themekit/pkg/fileops"
	"github.com/kcaldas/themekit/pkg/logging"
)

// DefaultDebounce is the coalescing window used when Config.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// ErrAlreadyRunning is returned by Run when another Run call is active.
var ErrAlreadyRunning = errors.New("watcher already running")

// State is the watch loop phase.
type State int32

const (
	Idle State = iota
	Armed
	Reloading
	Notifying
)

var stateNames = [...]string{"idle", "armed", "reloading", "notifying"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// changeOps are the fsnotify operations that trigger a reload. Chmod is
// ignored.
const changeOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Config fixes what a Watcher observes. It never changes after New.
type Config struct {
	// Path is the theme document to observe. Empty leaves the watcher Idle.
	Path string
	// DataDir receives the copy, under the same base name as Path.
	DataDir string
	// Debounce coalesces bursts of events from a single save.
	Debounce time.Duration
}

// Watcher runs the Idle → Armed → Reloading → Notifying → Armed loop.
type Watcher struct {
	cfg       Config
	files     fileops.Manager
	publisher events.Publisher
	log       logging.Logger

	state   atomic.Int32
	running atomic.Bool
}

// New creates a watcher. It does nothing until Run is called.
func New(cfg Config, files fileops.Manager, publisher events.Publisher, log logging.Logger) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Path != "" {
		cfg.Path = filepath.Clean(cfg.Path)
	}
	if files == nil {
		files = fileops.NewFileOpsManager()
	}
	if publisher == nil {
		publisher = events.NoOpPublisher{}
	}
	return &Watcher{
		cfg:       cfg,
		files:     files,
		publisher: publisher,
		log:       logging.OrDisabled(log).With("component", "watcher"),
	}
}

// State reports the current loop phase.
func (w *Watcher) State() State {
	return State(w.state.Load())
}

// Path returns the observed document path.
func (w *Watcher) Path() string {
	return w.cfg.Path
}

func (w *Watcher) setState(s State) {
	prev := State(w.state.Swap(int32(s)))
	if prev != s {
		w.log.Debug("watcher state changed", "from", prev, "to", s)
	}
}

// Run blocks until ctx is done. With no path configured it logs once and
// returns nil immediately, leaving the watcher Idle. Cancellation is the only
// way out of the loop and also returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	if w.cfg.Path == "" {
		w.log.Info("no theme path configured, watcher stays idle")
		return nil
	}
	if !w.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer w.running.Store(false)
	defer w.setState(Idle)

	w.log.Info("watching theme document", "path", w.cfg.Path, "data_dir", w.cfg.DataDir)
	failures := 0
	for {
		err := w.awaitChange(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			// warn on the first failure of a run, debug after that
			failures++
			if failures == 1 {
				w.log.Warn("failed to arm theme watch, retrying", "path", w.cfg.Path, "error", err)
			} else {
				w.log.Debug("theme watch still unavailable", "path", w.cfg.Path, "attempt", failures, "error", err)
			}
			if !sleep(ctx, w.cfg.Debounce) {
				return nil
			}
			continue
		}
		failures = 0
		w.reload()
	}
}

// awaitChange arms a watch on the document's directory and returns once a
// burst of change events for the document has settled. The watch handle is
// closed before returning.
func (w *Watcher) awaitChange(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fs watcher: %w", err)
	}
	defer fw.Close()

	// Watching the directory keeps the watch alive across editors that save
	// by renaming a temp file over the original.
	dir := filepath.Dir(w.cfg.Path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.setState(Armed)

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return errors.New("fs watcher closed")
			}
			if filepath.Clean(ev.Name) != w.cfg.Path || ev.Op&changeOps == 0 {
				continue
			}
			w.log.Debug("theme document event", "op", ev.Op.String())
			settle = time.After(w.cfg.Debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("fs watcher closed")
			}
			w.log.Warn("theme watch error", "error", err)
		case <-settle:
			return nil
		}
	}
}

func (w *Watcher) reload() {
	log := w.log.With("reload_id", uuid.NewString())

	w.setState(Reloading)
	if err := w.copyDocument(); err != nil {
		log.Warn("theme reload failed, re-arming without notifying", "error", err)
		return
	}

	w.setState(Notifying)
	w.publisher.Publish(events.ReloadTopic, events.ReloadEvent{})
	log.Info("theme document reloaded", "path", w.cfg.Path)
}

func (w *Watcher) copyDocument() error {
	if w.cfg.DataDir == "" {
		return nil
	}
	dst := filepath.Join(w.cfg.DataDir, filepath.Base(w.cfg.Path))
	if filepath.Clean(dst) == w.cfg.Path {
		return nil
	}
	return w.files.ReplaceFile(w.cfg.Path, dst)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
