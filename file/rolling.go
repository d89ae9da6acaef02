package file

import (
	"github.com/abyssdigger/plog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RollingConfig configures a RollingPrinter.
type RollingConfig struct {
	// Filename is the file to write to; backups go next to it.
	Filename string
	// MaxSizeMB is the size in megabytes at which the file is rotated.
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep (0 keeps all).
	MaxBackups int
	// MaxAgeDays removes rotated files older than this many days (0 keeps all).
	MaxAgeDays int
	// Compress gzips rotated files.
	Compress bool
}

// RollingPrinter is a synchronous file sink rotating by size through
// lumberjack: every Println writes on the caller's goroutine. Use it where
// the lumberjack naming scheme (name-<timestamp>.ext backups, optional gzip)
// is wanted instead of the Printer's .bak scheme.
type RollingPrinter struct {
	*plog.WriterPrinter
	roller *lumberjack.Logger
}

func NewRolling(cfg RollingConfig, flatten plog.Flattener) *RollingPrinter {
	roller := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	return &RollingPrinter{
		WriterPrinter: plog.NewWriterPrinter(roller, flatten),
		roller:        roller,
	}
}

// Rotate forces a rotation now.
func (p *RollingPrinter) Rotate() error {
	return p.roller.Rotate()
}

func (p *RollingPrinter) Close() error {
	return p.roller.Close()
}
