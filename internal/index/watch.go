package index

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Invalidator is anything with a droppable cache. All three stores qualify.
type Invalidator interface {
	Invalidate()
}

// Watch invalidates the given stores whenever a JSON file under dir changes.
// The indexer rewrites the static indexes in place; without this, a running
// server would keep serving the previous generation until restart.
//
// Returns a stop function. Watching is best effort: watcher errors are logged
// and the server keeps running on its cached data.
func Watch(ctx context.Context, dir string, stores ...Invalidator) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(event.Name, ".json") {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				slog.Debug("catalog file changed, invalidating index caches", "file", event.Name)
				for _, s := range stores {
					s.Invalidate()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("catalog watcher error", "error", err)
			}
		}
	}()

	return func() {
		watcher.Close()
		<-done
	}, nil
}
