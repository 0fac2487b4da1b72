package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// watchFile sends 'path' on the returned channel whenever it is written
// or replaced. The watch ends when the returned watcher is closed.
func watchFile(path string, logger hclog.Logger) (reload <-chan string, watcher *fsnotify.Watcher, err error) {
	watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return
	}

	// Watch the directory, as editors often replace the file.
	path = filepath.Clean(path)
	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		watcher.Close()
		watcher = nil
		return
	}

	ch := make(chan string, 1)
	reload = ch

	go func() {
		defer close(ch)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				logger.Debug("changed", "path", path, "op", event.Op.String())
				select {
				case ch <- path:
				default:
					// Reload already pending.
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch", "error", err)
			}
		}
	}()

	return
}
