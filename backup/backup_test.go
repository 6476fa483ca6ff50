package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRun(t *testing.T) {
	loc := time.UTC

	before := time.Date(2026, 4, 10, 1, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 4, 10, 2, 0, 0, 0, loc), NextRun(before, 2, 0))

	exactly := time.Date(2026, 4, 10, 2, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 4, 11, 2, 0, 0, 0, loc), NextRun(exactly, 2, 0))

	after := time.Date(2026, 12, 31, 23, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2027, 1, 1, 2, 0, 0, 0, loc), NextRun(after, 2, 0))
}

func newScheduler(t *testing.T, now time.Time) (*Scheduler, *testclock.Clock) {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "data")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "orders.json"), []byte(`[]`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "orders.txt"), []byte("line\n"), 0644))

	clk := testclock.NewClock(now)
	return &Scheduler{
		SrcDir:    src,
		BackupDir: filepath.Join(root, "backup"),
		Retention: 48 * time.Hour,
		Hour:      2,
		Clock:     clk,
	}, clk
}

func TestRunOnceCopiesTree(t *testing.T) {
	s, _ := newScheduler(t, time.Date(2026, 4, 10, 2, 0, 0, 0, time.UTC))

	dest, err := s.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.BackupDir, "2026-04-10_02-00-00"), dest)

	data, err := os.ReadFile(filepath.Join(dest, "orders.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = os.ReadFile(filepath.Join(dest, "nested", "orders.txt"))
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}

func TestRunOnceSkipsInFlightWrites(t *testing.T) {
	s, _ := newScheduler(t, time.Date(2026, 4, 10, 2, 0, 0, 0, time.UTC))
	// Left behind by a store write that has not been renamed yet.
	require.NoError(t, os.WriteFile(filepath.Join(s.SrcDir, "orders.json.123456.tmp"), []byte(`[{"partial"`), 0644))

	dest, err := s.RunOnce()
	require.NoError(t, err)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"nested", "orders.json"}, names)
}

func TestRunOnceMissingSource(t *testing.T) {
	s, _ := newScheduler(t, time.Now())
	s.SrcDir = filepath.Join(t.TempDir(), "missing")

	_, err := s.RunOnce()
	assert.Error(t, err)
}

func TestCleanupRemovesOldBackups(t *testing.T) {
	now := time.Now()
	s, _ := newScheduler(t, now)

	oldDir := filepath.Join(s.BackupDir, "old")
	freshDir := filepath.Join(s.BackupDir, "fresh")
	require.NoError(t, os.MkdirAll(oldDir, 0755))
	require.NoError(t, os.MkdirAll(freshDir, 0755))
	require.NoError(t, os.Chtimes(oldDir, now.Add(-72*time.Hour), now.Add(-72*time.Hour)))

	s.Cleanup()

	_, err := os.Stat(oldDir)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(freshDir)
	assert.NoError(t, err)
}

func TestRunBacksUpAtScheduledTime(t *testing.T) {
	// Keep the fake clock near the real one so Cleanup leaves the fresh copy alone.
	start := time.Now().UTC().Truncate(24 * time.Hour).Add(time.Hour)
	s, clk := newScheduler(t, start)
	want := start.Add(time.Hour).Format("2006-01-02_15-04-05")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx)
	}()

	require.NoError(t, clk.WaitAdvance(time.Hour, time.Second, 1))

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(s.BackupDir, want, "orders.json"))
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
