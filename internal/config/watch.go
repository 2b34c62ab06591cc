package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mainbong/restly/internal/logger"
)

// Watch calls onChange each time the config file at path is written or replaced.
// It blocks until ctx is done. The parent directory is watched so editors that
// save by rename are picked up too.
func Watch(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	return watchLoop(ctx, watcher.Events, watcher.Errors, target, onChange)
}

// watchLoop keeps running across watcher errors; only ctx or closed channels end it.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, target string, onChange func()) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				onChange()
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error: %v", err)
		}
	}
}
