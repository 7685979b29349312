package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk. A cooldown
// absorbs the bursts of write events editors and atomic-save tools produce.
type Watcher struct {
	Path     string
	Cooldown time.Duration
}

// Start blocks until ctx is done, invoking onUpdate with each successfully
// reloaded config. Reload failures are skipped silently; the previous
// config stays in effect.
func (w Watcher) Start(ctx context.Context, onUpdate func(AppConfig)) error {
	if w.Cooldown <= 0 {
		w.Cooldown = 2 * time.Second
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: atomic saves replace the inode and
	// would silently detach a file-level watch.
	dir := filepath.Dir(w.Path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(w.Path)
	var lastReload time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if time.Since(lastReload) < w.Cooldown {
				continue
			}
			if cfg, err := LoadWithEnvOverrides(w.Path); err == nil && onUpdate != nil {
				lastReload = time.Now()
				onUpdate(cfg)
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}
