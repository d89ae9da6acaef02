package config

import (
	"context"
	"sync"
	"time"

	"github.com/abyssdigger/plog"
	"github.com/abyssdigger/plog/file"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const DEFAULT_CLOSE_TIMEOUT = 5 * time.Second

// Watcher keeps a Logger in line with its configuration file: every change
// is loaded, validated and built, then the logger gets the new config and
// printer set in one step each. A file printer whose settings did not
// change is carried over; otherwise the previous one is closed, writing its
// queue, before the new set is published. An invalid file leaves the
// logger as it was.
type Watcher struct {
	mtx     sync.Mutex
	v       *viper.Viper
	logger  *plog.Logger
	lock    *file.DirLock
	current *Built

	// OnReload, if set, is called after every reload attempt.
	OnReload func(b *Built, err error)
}

// NewWatcher prepares a watcher for logger, currently running with current
// (may be nil).
func NewWatcher(v *viper.Viper, logger *plog.Logger, current *Built, lock *file.DirLock) *Watcher {
	return &Watcher{v: v, logger: logger, current: current, lock: lock}
}

// Start watches the config file through fsnotify.
func (w *Watcher) Start() {
	w.v.OnConfigChange(func(fsnotify.Event) {
		w.reload(false)
	})
	w.v.WatchConfig()
}

// Reload re-reads the config file and applies it.
func (w *Watcher) Reload() (*Built, error) {
	return w.reload(true)
}

func (w *Watcher) reload(read bool) (b *Built, err error) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	defer func() {
		if w.OnReload != nil {
			w.OnReload(b, err)
		}
	}()
	if read && w.v.ConfigFileUsed() != "" {
		if err = w.v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	cfg, err := Load(w.v)
	if err != nil {
		return nil, err
	}
	if b, err = cfg.Build(w.lock); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), DEFAULT_CLOSE_TIMEOUT)
	defer cancel()
	old := w.current
	if old != nil {
		b.adopt(old)
		// the old file printers drain before the new ones can write
		old.closeFilesNotIn(ctx, b)
	}
	w.logger.Reconfigure(b.Config)
	w.logger.Outputs().Replace(b.Printers...)
	if old != nil && old.Rolling != nil {
		old.Rolling.Close()
	}
	w.current = b
	return b, nil
}

// Current returns the build in use.
func (w *Watcher) Current() *Built {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.current
}
