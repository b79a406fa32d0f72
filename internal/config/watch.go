package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const (
	minTimeBetweenReloads = 500 * time.Millisecond
	delayBeforeReload     = 50 * time.Millisecond
)

// Watcher reloads a configuration file whenever it is written.
type Watcher struct {
	path     string
	onChange func(*Config)
	fs       *fsnotify.Watcher
	done     chan struct{}
	once     sync.Once
}

// Watch starts watching the file at path and calls onChange with every
// configuration that loads successfully. Broken edits are logged and skipped.
// The directory is watched rather than the file, so editors that replace the
// file on save keep working.
func Watch(path string, onChange func(*Config)) (*Watcher, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		onChange: onChange,
		fs:       fs,
		done:     make(chan struct{}),
	}
	go w.watch()

	log.Debugf("Watching %s for changes", path)
	return w, nil
}

func (w *Watcher) watch() {
	defer close(w.done)

	var last time.Time
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			now := time.Now()
			if now.Sub(last) < minTimeBetweenReloads {
				continue
			}
			last = now

			<-time.After(delayBeforeReload)
			c, err := Load(w.path)
			if err != nil {
				log.WithError(err).Warn("Failed to reload config file")
				continue
			}
			log.Info("Reloaded config")
			w.onChange(c)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("Config watcher error")
		}
	}
}

// Close stops the watcher and waits for a reload in progress to finish.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.fs.Close()
		<-w.done
	})
	return err
}
