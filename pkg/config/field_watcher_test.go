package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestFieldWatcherReloadsOverride(t *testing.T) {
	defer goleak.VerifyNone(t)

	initTestFS(t)
	m, err := NewFieldConfigManager(DefaultFieldDir)
	require.NoError(t, err)

	dir := t.TempDir()
	w, err := NewFieldWatcher(m, dir)
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "streaks.yaml"),
		[]byte("name: streaks\ncount: 20\nrender: { shape: blob }\n"), 0o644))

	select {
	case v := <-w.Updates():
		assert.Equal(t, "streaks", v.Name)
		assert.Equal(t, 20, v.Count)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	got, ok := m.Get("streaks")
	require.True(t, ok)
	assert.Equal(t, 20, got.Count)

	cancel()
	w.Wait()
}

func TestFieldWatcherMissingDir(t *testing.T) {
	defer goleak.VerifyNone(t)

	initTestFS(t)
	m, err := NewFieldConfigManager(DefaultFieldDir)
	require.NoError(t, err)

	w, err := NewFieldWatcher(m, filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Error(t, w.Start(context.Background()))
	w.Wait()
}
