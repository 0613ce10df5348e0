package cfg

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watcher re-parses the config file whenever it changes and publishes the
// result on Changes. Grounded on the teacher's internal/reset/reader.go:
// watch the containing directory rather than the file itself, since
// editors that save by rename-over-original would otherwise leave a
// dangling watch on the old inode.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	Changes chan Config
}

// Watch starts watching the directory containing path. Call Close when
// done.
func Watch(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create config watcher")
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, errors.Wrapf(err, "watch config directory %q", dir)
	}
	w := &Watcher{path: path, fsw: fsw, Changes: make(chan Config, 1)}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				close(w.Changes)
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				log.Printf("config reload: %v", err)
				continue
			}
			select {
			case w.Changes <- cfg:
			default:
				// Drop an unconsumed stale reload rather than block the
				// watcher goroutine; the next change will supersede it.
				select {
				case <-w.Changes:
				default:
				}
				w.Changes <- cfg
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("config watcher: %v", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
