// CLASSIFICATION: COMMUNITY
// Filename: watch.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package watch reports changes under the serving root while the server
// runs, so a rebuild landing in the tree shows up in the server log.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Logger abstracts logging for the watcher.
type Logger interface {
	Printf(string, ...any)
}

// Change is a single filesystem event, with Path relative to the root.
type Change struct {
	Path string
	Op   fsnotify.Op
}

// Watcher follows every directory below a root.
type Watcher struct {
	root string
	fsw  *fsnotify.Watcher
	log  Logger

	mu      sync.Mutex
	watched map[string]bool
	notify  []func(Change)
}

// New registers root and all directories below it.
func New(root string, log Logger) (*Watcher, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, errors.Wrap(err, "watch root")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	w := &Watcher{root: root, fsw: fsw, log: log, watched: make(map[string]bool)}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Notify registers fn to be called for every change. Call before Run.
func (w *Watcher) Notify(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notify = append(w.notify, fn)
}

// Run processes events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Printf("watch error: %v", err)
		}
	}
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		// new directories must be watched before anyone reacts to them
		if err := w.addTree(ev.Name); err != nil {
			w.log.Printf("watch %s: %v", ev.Name, err)
		}
	}
	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		w.mu.Lock()
		delete(w.watched, ev.Name)
		w.mu.Unlock()
	}

	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		rel = ev.Name
	}
	c := Change{Path: filepath.ToSlash(rel), Op: ev.Op}
	w.log.Printf("changed %s (%s)", c.Path, c.Op)

	w.mu.Lock()
	fns := append([]func(Change){}, w.notify...)
	w.mu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

// addTree watches dir and every directory below it. Non-directories are
// ignored, which lets Create events pass through here unconditionally.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir && !errors.Is(err, fs.ErrNotExist) {
				return errors.Wrapf(err, "walk %s", p)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.watched[p] {
			return nil
		}
		if err := w.fsw.Add(p); err != nil {
			return errors.Wrapf(err, "watch %s", p)
		}
		w.watched[p] = true
		return nil
	})
}
