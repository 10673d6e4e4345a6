package schema

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events editors emit for one save.
const reloadDelay = 100 * time.Millisecond

// Watch reloads the schema document at path whenever it changes and hands the
// new registry to onLoad. A document that fails to load is passed to onError
// and the caller keeps its previous registry. Watch blocks until ctx is done.
//
// The parent directory is watched so that files replaced by rename, as most
// editors do, keep being tracked.
func Watch(ctx context.Context, path string, onLoad func(*Registry), onError func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	reload := func() {
		reg, err := LoadFile(abs)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onLoad(reg)
	}

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(reloadDelay)
			}
		case <-timer.C:
			reload()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if onError != nil && !errors.Is(err, fsnotify.ErrEventOverflow) {
				onError(err)
			}
		}
	}
}
