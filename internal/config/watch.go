package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const debounceDelay = 100 * time.Millisecond

// Watcher reloads the config file whenever another process writes it.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	log     zerolog.Logger
	changes chan *Config
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the config file at path. The parent directory is
// watched so that files replaced by rename are still seen; it must exist.
func Watch(path string, log zerolog.Logger) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}

	w := &Watcher{
		watcher: fw,
		path:    absPath,
		log:     log.With().Str("component", "config-watcher").Logger(),
		changes: make(chan *Config, 1),
		done:    make(chan struct{}),
	}
	go w.watch()
	return w, nil
}

// Changes delivers the freshly loaded config after each change. Only the
// latest unread config is kept.
func (w *Watcher) Changes() <-chan *Config {
	return w.changes
}

func (w *Watcher) watch() {
	var timer *time.Timer

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("config watcher error")

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFrom(w.path)
	if err != nil {
		w.log.Warn().Err(err).Msg("reloading config")
		return
	}

	select {
	case <-w.done:
		return
	default:
	}

	// Replace any unread config with the newer one.
	select {
	case <-w.changes:
	default:
	}
	select {
	case w.changes <- cfg:
	default:
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
