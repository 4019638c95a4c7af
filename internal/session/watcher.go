// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ErrNoTokenFile is returned when a watcher is requested for a
// memory-only store.
var ErrNoTokenFile = errors.New("session store has no token file to watch")

// =============================================================================
// TOKEN FILE WATCHER
// =============================================================================

// Watcher observes the token file on disk and feeds external changes
// (deletion by another process, a token written out-of-band) into the
// store's listener path. This replaces the original front-end's
// once-a-second polling of its login flag.
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher creates a watcher for the store's token file. Returns an
// error for memory-only stores, which have nothing to watch.
func NewWatcher(store *Store) (*Watcher, error) {
	if store.Path() == "" {
		return nil, ErrNoTokenFile
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		store:   store,
		watcher: fw,
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching. The state directory is watched rather than
// the file itself: the store replaces the file on every write (atomic
// rename), which would silently drop a watch on the old inode.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.store.Path())
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	tokenPath := w.store.Path()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != tokenPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.store.reloadFromDisk()
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal; the next explicit store
			// operation still works without the watcher.
		}
	}
}
