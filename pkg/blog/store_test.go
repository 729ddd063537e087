package blog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePost(t *testing.T, dir, name, title, date string) {
	t.Helper()
	data := "---\ntitle: " + title + "\ndate: " + date + "\n---\nbody\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
}

func TestStoreReloadKeepsSnapshotOnFailure(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "first.md", "First", "2024-01-01")

	store, err := NewStore(os.DirFS(dir), Options{})
	require.NoError(t, err)
	before := store.Snapshot()
	assert.Equal(t, 1, before.Len())

	writePost(t, dir, "second.md", "Second", "2024-02-01")
	require.NoError(t, store.Reload())
	assert.Equal(t, 2, store.Snapshot().Len())
	assert.Equal(t, 1, before.Len(), "old snapshots are immutable")

	writePost(t, dir, "broken.md", "Broken", "not-a-date")
	require.Error(t, store.Reload())
	assert.Equal(t, 2, store.Snapshot().Len())
}

func TestNewStoreFailsOnMalformedContent(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "broken.md", "Broken", "yesterday")

	_, err := NewStore(os.DirFS(dir), Options{})
	assert.ErrorContains(t, err, "broken.md")
}

func TestStoreWatch(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "first.md", "First", "2024-01-01")

	store, err := NewStore(os.DirFS(dir), Options{})
	require.NoError(t, err)
	store.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx, dir) }()
	t.Cleanup(func() {
		cancel()
		err := <-done
		assert.True(t, err == nil || errors.Is(err, context.Canceled), "watch: %v", err)
	})

	// the watcher registers asynchronously; keep touching the tree until the
	// reload is observed
	require.Eventually(t, func() bool {
		_ = os.WriteFile(
			filepath.Join(dir, "second.md"),
			[]byte("---\ntitle: Second\ndate: 2024-02-01\n---\nbody\n"),
			0o644,
		)
		_, found := store.Snapshot().BySlug("second")
		return found
	}, 5*time.Second, 50*time.Millisecond)
}

func TestStoreWatchMissingDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content")

	store, err := NewStore(os.DirFS(root), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, store.Snapshot().Len())
	store.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx, root) }()
	t.Cleanup(func() {
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})

	require.Eventually(t, func() bool {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return false
		}
		writePost(t, root, "first.md", "First", "2024-01-01")
		_, found := store.Snapshot().BySlug("first")
		return found
	}, 5*time.Second, 50*time.Millisecond)
}

func TestStoreWatchMissingParent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b", "content")
	store, err := NewStore(os.DirFS(root), Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, store.Watch(ctx, root), context.DeadlineExceeded)
}
