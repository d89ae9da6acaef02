package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abyssdigger/plog"
	"github.com/abyssdigger/plog/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileConfigText(dir, level string) string {
	return `
level: ` + level + `
console:
  enabled: false
file:
  enabled: true
  dir: ` + dir + `
`
}

func Test_Watcher_Reload(t *testing.T) {
	base := t.TempDir()
	logs := filepath.Join(base, "logs")
	path := writeConfig(t, base, fileConfigText(logs, "INFO"))
	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	lock := file.NewDirLock()
	first, err := cfg.Build(lock)
	require.NoError(t, err)

	logger := plog.NewLogger(first.Config, first.Printers...)
	w := NewWatcher(v, logger, first, lock)
	var reloads []error
	w.OnReload = func(b *Built, err error) { reloads = append(reloads, err) }

	logger.Log(plog.LVL_INFO, "T", "before")
	require.NoError(t, os.WriteFile(path, []byte(fileConfigText(logs, "ERROR")), 0o644))
	second, err := w.Reload()
	require.NoError(t, err)
	assert.Same(t, second, w.Current())
	assert.Same(t, first.Files[0], second.Files[0], "unchanged file printer carried over")
	assert.Equal(t, plog.LVL_ERROR, logger.Config().Level())
	assert.Equal(t, second.Printers, logger.Outputs().Snapshot().Printers())

	logger.Log(plog.LVL_INFO, "T", "filtered")
	logger.Log(plog.LVL_ERROR, "T", "after")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, second.Close(ctx))

	content, err := os.ReadFile(filepath.Join(logs, "log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "|I|T|before\n")
	assert.Contains(t, string(content), "|E|T|after\n")
	assert.NotContains(t, string(content), "filtered")

	assert.NoError(t, first.Flush(ctx))
	assert.NoError(t, first.Close(ctx))
	assert.Equal(t, []error{nil}, reloads)
}

func Test_Watcher_ReloadDrainsChangedFilePrinter(t *testing.T) {
	base := t.TempDir()
	logs := filepath.Join(base, "logs")
	path := writeConfig(t, base, fileConfigText(logs, "INFO"))
	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	first, err := cfg.Build(nil)
	require.NoError(t, err)
	logger := plog.NewLogger(first.Config, first.Printers...)
	w := NewWatcher(v, logger, first, nil)

	const _BEFORE_ = 500
	for i := range _BEFORE_ {
		logger.Log(plog.LVL_INFO, "T", fmt.Sprintf("before-%d", i))
	}
	changed := fileConfigText(logs, "INFO") + "  max_size: 64MiB\n"
	require.NoError(t, os.WriteFile(path, []byte(changed), 0o644))
	second, err := w.Reload()
	require.NoError(t, err)
	assert.NotSame(t, first.Files[0], second.Files[0])
	assert.Zero(t, first.Files[0].Pending(), "old queue written before the reload returned")
	logger.Log(plog.LVL_INFO, "T", "after")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, second.Close(ctx))
	b, err := os.ReadFile(filepath.Join(logs, "log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, _BEFORE_+1)
	for i := range _BEFORE_ {
		assert.True(t, strings.HasSuffix(lines[i], fmt.Sprintf("|before-%d", i)), lines[i])
	}
	assert.True(t, strings.HasSuffix(lines[_BEFORE_], "|after"), lines[_BEFORE_])
}

func Test_Watcher_InvalidReloadKeepsLogger(t *testing.T) {
	base := t.TempDir()
	path := writeConfig(t, base, fileConfigText(filepath.Join(base, "logs"), "WARN"))
	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	first, err := cfg.Build(nil)
	require.NoError(t, err)
	logger := plog.NewLogger(first.Config, first.Printers...)
	w := NewWatcher(v, logger, first, nil)
	var got error
	w.OnReload = func(b *Built, err error) {
		assert.Nil(t, b)
		got = err
	}

	require.NoError(t, os.WriteFile(path, []byte(fileConfigText(filepath.Join(base, "logs"), "LOUD")), 0o644))
	b, err := w.Reload()
	assert.Nil(t, b)
	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Equal(t, err, got)
	assert.Same(t, first, w.Current())
	assert.Equal(t, plog.LVL_WARN, logger.Config().Level())
	assert.Equal(t, first.Printers, logger.Outputs().Snapshot().Printers())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, first.Close(ctx))
}
