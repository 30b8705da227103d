package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Los editores suelen escribir en varias operaciones; se agrupan.
const watchDebounce = 150 * time.Millisecond

// watchAndRun ejecuta run y vuelve a ejecutarlo cada vez que cambia alguno
// de paths, hasta que se cancele ctx. Se vigilan los directorios y no los
// archivos, porque muchos editores guardan reemplazando el archivo.
// Los archivos nuevos que coincidan con un glob no se agregan.
func watchAndRun(ctx context.Context, paths []string, run func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	watched := make(map[string]bool, len(paths))
	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	if err := run(); err != nil {
		cliLog.Warn("score failed", map[string]any{"err": err})
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isRelevant(ev, watched) {
				continue
			}
			cliLog.Debug("snapshot changed", map[string]any{"path": ev.Name, "op": ev.Op.String()})
			pending = time.After(watchDebounce)

		case <-pending:
			pending = nil
			if err := run(); err != nil {
				cliLog.Warn("score failed", map[string]any{"err": err})
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			cliLog.Error("fsnotify error", map[string]any{"err": err})
		}
	}
}

func isRelevant(ev fsnotify.Event, watched map[string]bool) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return watched[abs]
}
