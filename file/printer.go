// Package file provides the durable log sink: a printer appending to files
// in one directory from a single background goroutine, with pluggable file
// naming, backup (rotation) and age based retention.
package file

/*
Every Println is turned into a job and queued; one worker goroutine, started
by the first Println, takes the jobs in order and is the only code touching
the open file. The worker writes each entry with the following steps:
 - make sure the directory exists (once)
 - pick the file name (again for every entry when the naming policy is
   changeable) and switch files when it changed
 - recreate the file if somebody deleted it
 - move the file aside when the backup policy asks for it
 - append the flattened line under the DirLock write lock
 - sweep old files under the DirLock read lock
An error or panic while writing one entry loses that entry only: it is
reported to the fallback writer and the worker goes on with the next job.
*/

import (
	"cmp"
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abyssdigger/plog"
	"github.com/pkg/errors"
)

const (
	// Error messages used across file operations (used for testing).
	_ERROR_MESSAGE_EMPTY_FILE_NAME = "file name generator returned an empty name"
	_ERROR_MESSAGE_PRINTER_CLOSED  = "file printer is closed"
	_ERROR_MESSAGE_MKDIR           = "can't create log directory"
	_ERROR_MESSAGE_OPEN            = "can't open log file"
	_ERROR_MESSAGE_WRITE           = "can't write log file"
	_ERROR_MESSAGE_BACKUP          = "can't back up log file"
	_ERROR_MESSAGE_SWEEP           = "retention sweep failed"
	_ERROR_MESSAGE_ARCHIVE         = "can't archive log directory"
	_ERROR_MESSAGE_BAD_SIZE        = "bad size"
	_ERROR_MESSAGE_PANIC_WRITING   = "panic writing log file"
	_ERROR_MESSAGE_DROPPED         = "log entry dropped: "
)

const BACKUP_SUFFIX = ".bak"

// _STAMP_DIGITS is the width of the unix millis in <name><millis>.bak
// (13 digits from 2001 to 2286).
const _STAMP_DIGITS = 13

var (
	ErrEmptyFileName = errors.New(_ERROR_MESSAGE_EMPTY_FILE_NAME)
	ErrPrinterClosed = errors.New(_ERROR_MESSAGE_PRINTER_CLOSED)
)

// Option configures a Printer.
type Option func(*Printer)

// Printer is the file sink. Create it with New.
type Printer struct {
	dir        string
	naming     FileNameGenerator
	backup     BackupStrategy
	retention  int
	maxBackups int
	flatten    plog.Flattener
	lock       *DirLock
	fallbck    io.Writer
	now        func() time.Time
	fatal      func(error)

	start   sync.Once
	started atomic.Bool
	closed  atomic.Bool
	queue   *queue
	stopped chan struct{}

	// owned by the worker goroutine
	folderOK     bool
	lastFileName string
	file         *os.File
}

// New creates a printer writing into dir. Defaults: a single file named
// "log", backed up once larger than 1 MiB, no retention sweep, unlimited
// backups, plog.DefaultFlattener, a private DirLock and os.Stderr for
// reporting write failures.
func New(dir string, opts ...Option) *Printer {
	p := &Printer{
		dir:     dir,
		naming:  ChangelessFileNameGenerator{Name: DEFAULT_FILE_NAME},
		backup:  FileSizeBackupStrategy{MaxSize: DEFAULT_MAX_SIZE},
		flatten: plog.DefaultFlattener,
		lock:    NewDirLock(),
		fallbck: os.Stderr,
		now:     time.Now,
		fatal:   func(err error) { panic(err) },
		queue:   newQueue(),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func WithFileNameGenerator(g FileNameGenerator) Option {
	return func(p *Printer) {
		if g != nil {
			p.naming = g
		}
	}
}

func WithBackupStrategy(s BackupStrategy) Option {
	return func(p *Printer) {
		if s != nil {
			p.backup = s
		}
	}
}

// WithRetentionDays enables the retention sweep: files older than days are
// deleted once the directory holds more than days files. 0 disables it.
func WithRetentionDays(days int) Option {
	return func(p *Printer) { p.retention = max(days, 0) }
}

// WithMaxBackups caps the number of backups kept per file name, the oldest
// ones being deleted first. 0 keeps every backup until the retention sweep
// removes it.
func WithMaxBackups(n int) Option {
	return func(p *Printer) { p.maxBackups = max(n, 0) }
}

func WithFlattener(f plog.Flattener) Option {
	return func(p *Printer) {
		if f != nil {
			p.flatten = f
		}
	}
}

// WithDirLock shares lock with other components writing to the directory.
func WithDirLock(lock *DirLock) Option {
	return func(p *Printer) {
		if lock != nil {
			p.lock = lock
		}
	}
}

// WithFallback sets where dropped entries are reported (io.Discard for nil).
func WithFallback(w io.Writer) Option {
	return func(p *Printer) {
		if w == nil {
			w = io.Discard
		}
		p.fallbck = w
	}
}

func (p *Printer) Dir() string { return p.dir }

// Pending returns the number of jobs not yet taken by the worker.
func (p *Printer) Pending() int { return p.queue.len() }

// Println queues the entry and returns; the file is written later by the
// worker, in queueing order.
func (p *Printer) Println(level plog.Level, tag, msg string) {
	if !p.closed.Load() {
		p.ensureStarted()
		if p.queue.put(job{at: p.now(), level: level, tag: tag, msg: msg}) {
			return
		}
	}
	p.fbckWriteln(_ERROR_MESSAGE_DROPPED + ErrPrinterClosed.Error())
}

func (p *Printer) ensureStarted() {
	p.start.Do(func() {
		p.started.Store(true)
		go p.work()
	})
}

// Flush waits until every entry queued before the call has been handled.
func (p *Printer) Flush(ctx context.Context) error {
	if !p.started.Load() || p.closed.Load() {
		return p.waitStopped(ctx)
	}
	done := make(chan struct{})
	if !p.queue.put(job{done: done}) {
		return p.waitStopped(ctx)
	}
	select {
	case <-done:
		return nil
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes what is already queued, closes the file and stops the
// worker. Entries printed afterwards are dropped and reported to the
// fallback writer. Close only waits as long as ctx allows; the worker
// finishes its queue anyway.
func (p *Printer) Close(ctx context.Context) error {
	if p.closed.Swap(true) {
		return p.waitStopped(ctx)
	}
	// never started: there is no worker to stop, and a Println waiting on
	// start finds the queue sealed
	p.start.Do(func() {
		p.queue.seal()
		close(p.stopped)
	})
	if p.started.Load() {
		p.queue.put(job{done: make(chan struct{}), stop: true})
	}
	return p.waitStopped(ctx)
}

func (p *Printer) waitStopped(ctx context.Context) error {
	if !p.closed.Load() {
		return nil
	}
	select {
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// work is the worker loop. It only returns on the stop job.
func (p *Printer) work() {
	defer close(p.stopped)
	for {
		for _, j := range p.queue.take() {
			switch {
			case j.stop:
				p.closeFile()
				close(j.done)
				return
			case j.done != nil:
				close(j.done)
			default:
				err := p.safePrintln(j)
				if errors.Is(err, ErrEmptyFileName) {
					p.fatal(err)
				} else if err != nil {
					p.fbckWriteln(_ERROR_MESSAGE_DROPPED + err.Error())
				}
			}
		}
	}
}

func (p *Printer) safePrintln(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(_ERROR_MESSAGE_PANIC_WRITING + plog.PanicDesc(r))
		}
	}()
	return p.doPrintln(j)
}

func (p *Printer) doPrintln(j job) error {
	if !p.folderOK {
		if err := os.MkdirAll(p.dir, 0o755); err != nil {
			return errors.Wrap(err, _ERROR_MESSAGE_MKDIR)
		}
		p.folderOK = true
	}
	name := p.lastFileName
	if name == "" || p.naming.IsChangeable() {
		name = p.naming.Generate(j.level, j.at)
		if strings.TrimSpace(name) == "" {
			return errors.WithStack(ErrEmptyFileName)
		}
	}
	path := filepath.Join(p.dir, name)
	if name != p.lastFileName || p.file == nil || !exists(path) {
		p.closeFile()
		if err := p.openFile(name); err != nil {
			return err
		}
	}
	if p.backup.ShouldBackup(path) {
		p.closeFile()
		if err := p.backupFile(name); err != nil {
			p.fbckWriteln(err.Error())
		}
		if err := p.openFile(name); err != nil {
			return err
		}
	}
	line := p.flatten(j.at, j.level, j.tag, j.msg) + "\n"
	p.lock.Lock()
	_, err := p.file.WriteString(line)
	p.lock.Unlock()
	if err != nil {
		return errors.Wrap(err, _ERROR_MESSAGE_WRITE)
	}
	if p.retention > 0 {
		p.lock.RLock()
		_, err = Sweep(p.dir, p.retention, p.now(), name)
		p.lock.RUnlock()
		if err != nil {
			p.fbckWriteln(err.Error())
		}
	}
	return nil
}

func (p *Printer) openFile(name string) error {
	f, err := os.OpenFile(filepath.Join(p.dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		p.lastFileName = ""
		return errors.Wrap(err, _ERROR_MESSAGE_OPEN)
	}
	p.file = f
	p.lastFileName = name
	return nil
}

func (p *Printer) closeFile() {
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}
}

// backupFile renames <name> to <name>.bak. A previous <name>.bak is moved to
// <name><unix millis>.bak first, so no backup is ever overwritten.
func (p *Printer) backupFile(name string) error {
	path := filepath.Join(p.dir, name)
	bak := path + BACKUP_SUFFIX
	if exists(bak) {
		ts := p.now().UnixMilli()
		older := filepath.Join(p.dir, name+strconv.FormatInt(ts, 10)+BACKUP_SUFFIX)
		for exists(older) {
			ts++
			older = filepath.Join(p.dir, name+strconv.FormatInt(ts, 10)+BACKUP_SUFFIX)
		}
		if err := os.Rename(bak, older); err != nil {
			return errors.Wrap(err, _ERROR_MESSAGE_BACKUP)
		}
	}
	if err := os.Rename(path, bak); err != nil {
		return errors.Wrap(err, _ERROR_MESSAGE_BACKUP)
	}
	if p.maxBackups > 0 {
		return pruneBackups(p.dir, name, p.maxBackups)
	}
	return nil
}

// pruneBackups keeps the newest keep backups of name: <name>.bak is the
// newest, then <name><millis>.bak by decreasing millis.
func pruneBackups(dir, name string, keep int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrap(err, _ERROR_MESSAGE_BACKUP)
	}
	type backup struct {
		name string
		ts   int64
	}
	var backups []backup
	for _, e := range entries {
		ts, ok := backupStamp(name, e.Name())
		if ok && e.Type().IsRegular() {
			backups = append(backups, backup{e.Name(), ts})
		}
	}
	if len(backups) <= keep {
		return nil
	}
	slices.SortFunc(backups, func(a, b backup) int { return cmp.Compare(b.ts, a.ts) })
	for _, b := range backups[keep:] {
		if e := os.Remove(filepath.Join(dir, b.name)); e != nil && err == nil {
			err = errors.Wrap(e, _ERROR_MESSAGE_BACKUP)
		}
	}
	return err
}

// backupStamp recognises backups of name and returns their ordering key:
// math.MaxInt64 for <name>.bak, the millis for <name><millis>.bak. The
// millis are exactly _STAMP_DIGITS digits, so "ERROR+1.bak" or "log2.bak"
// are never taken for backups of "ERROR" or "log".
func backupStamp(name, candidate string) (int64, bool) {
	rest, ok := strings.CutPrefix(candidate, name)
	if !ok {
		return 0, false
	}
	stamp, ok := strings.CutSuffix(rest, BACKUP_SUFFIX)
	if !ok {
		return 0, false
	}
	if stamp == "" {
		return math.MaxInt64, true
	}
	if len(stamp) != _STAMP_DIGITS || strings.ContainsFunc(stamp, notDigit) {
		return 0, false
	}
	ts, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}

func notDigit(r rune) bool { return r < '0' || r > '9' }

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (p *Printer) fbckWriteln(s string) {
	if p.fallbck != nil {
		p.fallbck.Write([]byte(s + "\n"))
	}
}
