package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNoopBeforeInitialize(t *testing.T) {
	Close()
	l := Get(CategoryRunner)
	require.NotPanics(t, func() {
		l.Info("hello %s", "world")
	})
}

func TestInitializeWritesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir))
	defer Close()

	l := Get(CategoryStore)
	l.Info("ingested %d chunks", 3)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Contains(t, entries[0].Name(), "store")

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	require.Contains(t, string(data), "ingested 3 chunks")
}

func TestTimerStop(t *testing.T) {
	Close()
	timer := StartTimer(CategoryChunk, "test-op")
	elapsed := timer.Stop()
	require.GreaterOrEqual(t, elapsed, time.Duration(0))
}
