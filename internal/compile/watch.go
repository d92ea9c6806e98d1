package compile

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/newtype-lang/newtype/internal/config"
)

// WatchResult reports the outcome of one recompilation.
type WatchResult struct {
	Source string
	Output string
	Err    error
}

// Watcher recompiles .nt files as they change on disk.
type Watcher struct {
	w    *fsnotify.Watcher
	cfg  *config.Config
	opts Options
	out  chan WatchResult
}

// NewWatcher watches cfg.Src and every directory below it.
func NewWatcher(cfg *config.Config, opts Options) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(cfg.Src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		w.Close()
		return nil, err
	}

	return &Watcher{
		w:    w,
		cfg:  cfg,
		opts: opts,
		out:  make(chan WatchResult, 16),
	}, nil
}

// Results delivers one WatchResult per recompiled file.
func (w *Watcher) Results() <-chan WatchResult { return w.out }

// Run processes file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.out)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)

		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			w.out <- WatchResult{Err: err}
		}
	}
}

// handleEvent recompiles the file behind one filesystem event. A newly
// created directory is added to the watch set; a failure to add it is
// reported like a compilation failure, since changes below that
// directory would otherwise go unseen.
func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
		if ev.Op&fsnotify.Create != 0 {
			if err := w.w.Add(ev.Name); err != nil {
				w.out <- WatchResult{Source: ev.Name, Err: err}
			}
		}
		return
	}
	if filepath.Ext(ev.Name) != SourceExt {
		return
	}
	outPath, err := CompileFile(ev.Name, w.cfg, w.opts)
	w.out <- WatchResult{Source: ev.Name, Output: outPath, Err: err}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error { return w.w.Close() }
