package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRelevant(t *testing.T) {
	dir := t.TempDir()
	milo := filepath.Join(dir, "milo.yaml")
	watched := map[string]bool{milo: true}

	assert.True(t, isRelevant(fsnotify.Event{Name: milo, Op: fsnotify.Write}, watched))
	assert.True(t, isRelevant(fsnotify.Event{Name: milo, Op: fsnotify.Create}, watched))
	assert.False(t, isRelevant(fsnotify.Event{Name: milo, Op: fsnotify.Chmod}, watched))
	assert.False(t, isRelevant(fsnotify.Event{Name: filepath.Join(dir, "other.yaml"), Op: fsnotify.Write}, watched))
}

func TestWatchAndRun_RerunsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "milo.yaml")
	writeFile(t, path, miloYAML)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- watchAndRun(ctx, []string{path}, func() error {
			runs <- struct{}{}
			return nil
		})
	}()

	select {
	case <-runs:
	case <-time.After(2 * time.Second):
		t.Fatal("initial run not executed")
	}

	require.NoError(t, os.WriteFile(path, []byte(miloYAML+"\n"), 0o644))

	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("no rerun after write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
