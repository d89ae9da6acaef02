package file

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Sweep(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	setup := func(t *testing.T) string {
		dir := t.TempDir()
		touch(t, dir, "d1", 24*time.Hour-time.Minute, now)
		touch(t, dir, "d2", 2*24*time.Hour+time.Minute, now)
		touch(t, dir, "d5", 5*24*time.Hour, now)
		touch(t, dir, "current", 10*24*time.Hour, now)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
		old := now.Add(-30 * 24 * time.Hour)
		require.NoError(t, os.Chtimes(filepath.Join(dir, "sub"), old, old))
		return dir
	}

	t.Run("disabled", func(t *testing.T) {
		dir := setup(t)
		for _, days := range []int{0, -1} {
			removed, err := Sweep(dir, days, now)
			assert.NoError(t, err)
			assert.Empty(t, removed)
		}
		assert.Len(t, listDir(t, dir), 5)
	})
	t.Run("few_files", func(t *testing.T) {
		dir := setup(t)
		// 4 regular files, the directory does not count
		removed, err := Sweep(dir, 4, now)
		assert.NoError(t, err)
		assert.Empty(t, removed)
	})
	t.Run("old_files", func(t *testing.T) {
		dir := setup(t)
		removed, err := Sweep(dir, 2, now, "current")
		assert.NoError(t, err)
		sort.Strings(removed)
		assert.Equal(t, []string{"d2", "d5"}, removed)
		assert.Equal(t, []string{"current", "d1", "sub"}, listDir(t, dir))

		removed, err = Sweep(dir, 2, now, "current")
		assert.NoError(t, err)
		assert.Empty(t, removed, "second sweep is a no-op")
	})
	t.Run("one_day", func(t *testing.T) {
		dir := setup(t)
		removed, err := Sweep(dir, 1, now)
		assert.NoError(t, err)
		assert.Len(t, removed, 3)
		assert.Equal(t, []string{"d1", "sub"}, listDir(t, dir))
	})
	t.Run("floor", func(t *testing.T) {
		dir := setup(t)
		removed, err := SweepKeeping(dir, 1, 3, now)
		assert.NoError(t, err)
		assert.Equal(t, []string{"current"}, removed, "oldest first")
		assert.Equal(t, []string{"d1", "d2", "d5", "sub"}, listDir(t, dir))

		removed, err = SweepKeeping(dir, 1, 1, now)
		assert.NoError(t, err)
		assert.Equal(t, []string{"d5", "d2"}, removed)
		assert.Equal(t, []string{"d1", "sub"}, listDir(t, dir))
	})
	t.Run("missing_dir", func(t *testing.T) {
		_, err := Sweep(filepath.Join(t.TempDir(), "nope"), 1, now)
		assert.ErrorContains(t, err, _ERROR_MESSAGE_SWEEP)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func Test_Archive(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, dir, "log", 0, now)
	touch(t, dir, "log.bak", time.Hour, now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	zipPath := filepath.Join(dir, "logs.zip")

	n, err := Archive(dir, zipPath, NewDirLock())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	zr, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer zr.Close()
	got := map[string]string{}
	for _, f := range zr.File {
		assert.Equal(t, zip.Deflate, f.Method)
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		got[f.Name] = string(b)
	}
	assert.Equal(t, map[string]string{"log": "log", "log.bak": "log.bak"}, got)

	// archiving again skips the zip being written
	n, err = Archive(dir, zipPath, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func Test_Archive_MissingDir(t *testing.T) {
	base := t.TempDir()
	_, err := Archive(filepath.Join(base, "nope"), filepath.Join(base, "x.zip"), nil)
	assert.ErrorContains(t, err, _ERROR_MESSAGE_ARCHIVE)
	assert.NoFileExists(t, filepath.Join(base, "x.zip"))
}
