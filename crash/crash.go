// Package crash writes crash reports next to the regular logs: one file per
// day, appended under the shared file.DirLock, old reports removed by the
// same age based sweep the file printer uses.
package crash

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/abyssdigger/plog"
	"github.com/abyssdigger/plog/file"
	"github.com/pkg/errors"
)

const (
	DEFAULT_PREFIX      = "crash_"
	DEFAULT_SUFFIX      = ".log"
	DEFAULT_DATE_LAYOUT = "2006-01-02"
	TIME_LAYOUT         = "2006-01-02 15:04:05.000"

	_ERROR_MESSAGE_REPORT = "can't write crash report"
)

type Option func(*Reporter)

// Reporter appends crash reports to <dir>/crash_<date>.log.
type Reporter struct {
	dir       string
	lock      *file.DirLock
	retention int
	formatErr plog.ErrorFormatter
	fallbck   io.Writer
	now       func() time.Time
	stack     func() []byte
}

func New(dir string, opts ...Option) *Reporter {
	r := &Reporter{
		dir:       dir,
		lock:      file.NewDirLock(),
		formatErr: plog.DefaultErrorFormatter,
		fallbck:   os.Stderr,
		now:       time.Now,
		stack:     debug.Stack,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// WithDirLock shares lock with the file printers writing to dir.
func WithDirLock(lock *file.DirLock) Option {
	return func(r *Reporter) {
		if lock != nil {
			r.lock = lock
		}
	}
}

// WithRetentionDays sweeps reports older than days after each report. The
// newest days reports are kept however old they are.
func WithRetentionDays(days int) Option {
	return func(r *Reporter) { r.retention = max(days, 0) }
}

func WithErrorFormatter(f plog.ErrorFormatter) Option {
	return func(r *Reporter) {
		if f != nil {
			r.formatErr = f
		}
	}
}

// WithFallback sets where failures to write a report go (io.Discard for nil).
func WithFallback(w io.Writer) Option {
	return func(r *Reporter) {
		if w == nil {
			w = io.Discard
		}
		r.fallbck = w
	}
}

// FileName returns the report file used at t.
func FileName(t time.Time) string {
	return DEFAULT_PREFIX + t.Format(DEFAULT_DATE_LAYOUT) + DEFAULT_SUFFIX
}

// Report appends a report about v (a recovered panic value or an error) and
// returns the path written to.
func (r *Reporter) Report(v any) (string, error) {
	now := r.now()
	path := filepath.Join(r.dir, FileName(now))
	text := r.render(now, v)

	if err := r.appendReport(path, text); err != nil {
		return path, err
	}
	if r.retention > 0 {
		r.lock.RLock()
		_, err := file.SweepKeeping(r.dir, r.retention, r.retention, now, filepath.Base(path))
		r.lock.RUnlock()
		if err != nil {
			return path, err
		}
	}
	return path, nil
}

func (r *Reporter) appendReport(path, text string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return errors.Wrap(err, _ERROR_MESSAGE_REPORT)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, _ERROR_MESSAGE_REPORT)
	}
	_, err = f.WriteString(text)
	if e := f.Close(); err == nil {
		err = e
	}
	return errors.Wrap(err, _ERROR_MESSAGE_REPORT)
}

func (r *Reporter) render(now time.Time, v any) string {
	var sb strings.Builder
	sb.WriteString("==== crash at " + now.Format(TIME_LAYOUT) + " ====\n")
	host, _ := os.Hostname()
	fmt.Fprintf(&sb, "host: %s pid: %d go: %s %s/%s goroutines: %d\n",
		host, os.Getpid(), runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.NumGoroutine())
	switch e := v.(type) {
	case error:
		sb.WriteString(r.formatErr(e))
	case string:
		sb.WriteString("panic" + plog.PanicDesc(e))
	default:
		fmt.Fprintf(&sb, "panic: %v", v)
	}
	sb.WriteString("\n\n")
	sb.Write(r.stack())
	sb.WriteString("\n")
	return sb.String()
}

// Recover reports a panic in progress and panics again with the same value.
// Use it deferred at the top of a goroutine:
//
//	defer reporter.Recover()
func (r *Reporter) Recover() {
	if v := recover(); v != nil {
		if _, err := r.Report(v); err != nil {
			fmt.Fprintln(r.fallbck, err.Error())
		}
		panic(v)
	}
}
