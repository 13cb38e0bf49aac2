package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/quill/pkg/core"
)

const defaultEventBuffer = 100

// Watch observes the persisted collection for external changes (another
// process rewriting the store file) and emits one event per changed note.
// The pattern is a doublestar glob matched against note IDs.
//
// Only file-backed stores can be watched. The watcher goroutine stops when
// ctx is cancelled; the returned channel is closed on shutdown.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %s", pattern)
	}

	fileStore, ok := r.config.Store.(*FileStore)
	if !ok {
		return nil, errors.New("store does not support watching")
	}

	buffer := r.config.EventBuffer
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	events := make(chan core.Event, buffer)

	w := newWatchWorker(r, fileStore, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	return events, nil
}

// Reconcile reloads the persisted collection, replaces the in-memory state
// and returns one event per note that changed compared to what was held
// before. Used by the watcher after the store file is rewritten externally.
func (r *Repository) Reconcile(ctx context.Context) ([]core.Event, error) {
	fresh := r.loadNotes()

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	var events []core.Event

	seen := make(map[string]bool, len(fresh))
	freshNotes := make(map[string]core.Note, len(fresh))
	freshOrder := make([]string, 0, len(fresh))
	for _, n := range fresh {
		if _, dup := freshNotes[n.ID]; !dup {
			freshOrder = append(freshOrder, n.ID)
		}
		freshNotes[n.ID] = n
		seen[n.ID] = true

		old, existed := r.notes[n.ID]
		switch {
		case !existed:
			events = append(events, core.Event{Type: core.EventCreate, ID: n.ID, Timestamp: now})
		case !old.UpdatedAt.Equal(n.UpdatedAt) || old.Content != n.Content || old.Title != n.Title:
			events = append(events, core.Event{Type: core.EventModify, ID: n.ID, Timestamp: now})
		}
	}
	for id := range r.notes {
		if !seen[id] {
			events = append(events, core.Event{Type: core.EventDelete, ID: id, Timestamp: now})
		}
	}

	r.notes = freshNotes
	r.order = freshOrder
	return events, nil
}

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

type watchWorker struct {
	*worker.BaseWorker
	repo      *Repository
	store     *FileStore
	pattern   string
	events    chan<- core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(repo *Repository, store *FileStore, pattern string, events chan<- core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("kv-watcher"),
		repo:       repo,
		store:      store,
		pattern:    pattern,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory, not the file: atomic writes replace the file via
	// rename, which would orphan a direct file watch.
	if err := watcher.Add(w.store.Dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.store.Dir, err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.repo.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// relevantEvent reports whether the filesystem event touches the notes blob.
// Temp files from in-process atomic writes are ignored; the rename onto the
// final name is what lands as a Create/Write on the target.
func (w *watchWorker) relevantEvent(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, TempFilePrefix) {
		return false
	}
	return name == NotesKey+fileExt
}

// reconcileAndEmit is spawned after a debounced change burst settles.
func (w *watchWorker) reconcileAndEmit(ctx context.Context) {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		changed, err := w.repo.Reconcile(ctx)
		if err != nil {
			w.repo.config.Logger.Error("reconcile failed", "error", err)
			return err
		}
		for _, e := range changed {
			if match, _ := doublestar.Match(w.pattern, e.ID); !match {
				continue
			}
			w.sendEvent(ctx, e)
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		if w.repo.config.ErrorHandler != nil {
			w.repo.config.ErrorHandler(fmt.Errorf("reconcile panic: %w", err))
		} else {
			w.repo.config.Logger.Error("reconcile panic", "error", err)
		}
	}))
}

// sendEvent delivers an event, protecting against channel closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, event core.Event) {
	defer func() {
		// Recover from panic if channel was closed (worker stopping)
		_ = recover()
	}()
	select {
	case w.events <- event:
	case <-ctx.Done():
	}
}

func (w *watchWorker) handleWatcherError(err error) (shouldContinue bool) {
	w.repo.config.Logger.Error("fsnotify error", "error", err)
	if w.repo.config.ErrorHandler != nil {
		w.repo.config.ErrorHandler(err)
	}
	return true
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)

			// Stack only under debug logging; production logs stay quiet.
			var stack string
			if w.repo.config.Logger.Enabled(ctx, slog.LevelDebug) {
				stack = string(debug.Stack())
			}
			if stack != "" {
				w.repo.config.Logger.Error("watcher panic", "error", panicErr, "stack", stack)
			} else {
				w.repo.config.Logger.Error("watcher panic", "error", panicErr)
			}
			err = panicErr
		}

		w.debouncer.stopAndWait(5 * time.Second)
		_ = w.watcher.Close()
		w.repo.setWatcherActive(false)
		close(w.events)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevantEvent(event) {
				continue
			}
			w.repo.config.Logger.Debug("store change detected", "op", event.Op.String())
			w.debouncer.trigger(func() {
				w.reconcileAndEmit(ctx)
			})

		case werr, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if !w.handleWatcherError(werr) {
				return werr
			}
		}
	}
}

// debouncer coalesces bursts of filesystem events (editors and atomic writes
// produce several per save) into a single callback per quiet window.
type debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window}
}

// trigger schedules fn to run once the event burst settles. A new trigger
// within the window resets it.
func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		// The pending callback never fires; release its wait slot.
		d.wg.Done()
	}

	d.wg.Add(1)
	d.timer = time.AfterFunc(d.window, func() {
		defer d.wg.Done()
		fn()
	})
}

// stopAndWait stops accepting triggers and waits for in-flight callbacks.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
