package watch

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

func TestIsFixtureEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write fixture", fsnotify.Event{Name: "/tmp/x/test3.dds", Op: fsnotify.Write}, true},
		{"create fixture", fsnotify.Event{Name: "test14.dds", Op: fsnotify.Create}, true},
		{"remove fixture", fsnotify.Event{Name: "test0.dds", Op: fsnotify.Remove}, true},
		{"rename fixture", fsnotify.Event{Name: "test7.dds", Op: fsnotify.Rename}, true},
		{"chmod fixture", fsnotify.Event{Name: "test7.dds", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "resourcedata.hpp", Op: fsnotify.Write}, false},
		{"out of range", fsnotify.Event{Name: "test15.dds", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isFixtureEvent(tt.event))
		})
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), time.Millisecond, nil)
	assert.Error(t, err)
}

func TestRunRegeneratesOnFixtureChange(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, 50*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() error {
			changes <- struct{}{}
			return nil
		})
	}()

	// Unrelated files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	select {
	case <-changes:
		t.Fatal("unexpected regeneration for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}

	// A burst of writes to fixtures collapses into one regeneration.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "test3.dds"), []byte{byte(i)}, 0644))
	}
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no regeneration after fixture change")
	}
	select {
	case <-changes:
		t.Fatal("burst produced more than one regeneration")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
