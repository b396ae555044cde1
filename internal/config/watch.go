package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a settings file whenever it changes on disk.
//
// The file's directory is watched rather than the file itself so that
// editors which save by renaming a temporary file are still noticed.
// Only the newest reload is kept: a consumer that falls behind sees the
// latest settings, not every intermediate one.
type Watcher struct {
	path string
	base Settings

	fsw     *fsnotify.Watcher
	updates chan Settings
	errors  chan error
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// Watch starts watching path. Every reload layers the file and the
// environment over base, as Load does.
func Watch(path string, base Settings) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		base:    base,
		fsw:     fsw,
		updates: make(chan Settings, 1),
		errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Updates delivers settings after each successful reload. It is closed
// once the watcher stops.
func (w *Watcher) Updates() <-chan Settings { return w.updates }

// Errors delivers reload and watch failures. It is closed once the
// watcher stops.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	defer close(w.errors)
	defer close(w.updates)

	const changed = fsnotify.Write | fsnotify.Create | fsnotify.Rename

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Op.Has(changed) {
				continue
			}
			s, err := Load(w.path, w.base)
			if err != nil {
				replace(w.errors, err)
				continue
			}
			replace(w.updates, s)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			replace(w.errors, err)
		}
	}
}

// replace sends v on a one-slot channel, dropping a value nobody has
// read yet.
func replace[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
