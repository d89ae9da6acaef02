package config

import (
	"context"
	"os"
	"slices"

	"github.com/abyssdigger/plog"
	"github.com/abyssdigger/plog/crash"
	"github.com/abyssdigger/plog/file"
	"github.com/mattn/go-colorable"
)

// Built is what a Config describes, ready to use.
type Built struct {
	Config   *plog.Config
	Printers []plog.Printer
	Files    []*file.Printer
	Rolling  *file.RollingPrinter
	Crash    *crash.Reporter // nil unless crash reports are enabled

	file FileConfig
}

// Build creates the plog config and the printers. File printers and the
// crash reporter share lock (a new one when nil).
func (c *Config) Build(lock *file.DirLock) (*Built, error) {
	if errs := c.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	if lock == nil {
		lock = file.NewDirLock()
	}
	level, _ := plog.ParseLevel(c.Level)
	opts := []plog.Option{
		plog.WithLevel(level),
		plog.WithTag(c.Tag),
		plog.WithThread(c.Thread),
		plog.WithBorder(c.Border),
	}
	if c.Stack.Enabled {
		opts = append(opts, plog.WithStackTrace(c.Stack.Origin, c.Stack.Depth))
	}
	if len(c.BlockedTags) > 0 {
		opts = append(opts, plog.WithInterceptors(plog.BlacklistTags(c.BlockedTags...)))
	}
	b := &Built{Config: plog.NewConfig(opts...)}

	if c.Console.Enabled {
		b.Printers = append(b.Printers, c.Console.printer())
	}
	if c.File.Enabled {
		b.file = c.File
		fp := file.New(c.File.Dir, c.File.options(lock)...)
		b.Files = append(b.Files, fp)
		b.Printers = append(b.Printers, fp)
	}
	if c.Rolling.Enabled {
		b.Rolling = file.NewRolling(file.RollingConfig{
			Filename:   c.Rolling.Filename,
			MaxSizeMB:  c.Rolling.MaxSizeMB,
			MaxBackups: c.Rolling.MaxBackups,
			MaxAgeDays: c.Rolling.MaxAgeDays,
			Compress:   c.Rolling.Compress,
		}, nil)
		b.Printers = append(b.Printers, b.Rolling)
	}
	if c.Crash.Enabled {
		b.Crash = crash.New(c.Crash.Dir, crash.WithDirLock(lock), crash.WithRetentionDays(c.Crash.RetentionDays))
	}
	return b, nil
}

func (c ConsoleConfig) printer() plog.Printer {
	switch c.Color {
	case COLOR_ALWAYS:
		return plog.NewConsolePrinterTo(colorable.NewColorableStdout(), true)
	case COLOR_NEVER:
		return plog.NewConsolePrinterTo(os.Stdout, false)
	default:
		return plog.NewConsolePrinter()
	}
}

func (f FileConfig) options(lock *file.DirLock) []file.Option {
	var naming file.FileNameGenerator
	switch f.Naming {
	case NAMING_LEVEL:
		naming = file.LevelFileNameGenerator{}
	case NAMING_DATE:
		naming = file.DateFileNameGenerator{Layout: f.DateLayout}
	default:
		naming = file.ChangelessFileNameGenerator{Name: f.Name}
	}
	var backup file.BackupStrategy = file.NeverBackupStrategy{}
	if f.MaxSize != "" {
		size, _ := file.ParseSize(f.MaxSize)
		backup = file.FileSizeBackupStrategy{MaxSize: size}
	}
	return []file.Option{
		file.WithFileNameGenerator(naming),
		file.WithBackupStrategy(backup),
		file.WithRetentionDays(f.RetentionDays),
		file.WithMaxBackups(f.MaxBackups),
		file.WithDirLock(lock),
	}
}

// Flush waits for the file printers to write what they have queued.
func (b *Built) Flush(ctx context.Context) error {
	for _, fp := range b.Files {
		if err := fp.Flush(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close stops the file printers and closes the rolling file.
func (b *Built) Close(ctx context.Context) error {
	first := b.closeFilesNotIn(ctx, nil)
	if b.Rolling != nil {
		if err := b.Rolling.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// adopt takes over prev's file printer when the file settings are the same,
// so a directory keeps a single writer across reloads. The printer built
// for b has not written anything yet and is closed.
func (b *Built) adopt(prev *Built) {
	if len(b.Files) != 1 || len(prev.Files) != 1 || b.file != prev.file {
		return
	}
	fresh, kept := b.Files[0], prev.Files[0]
	b.Files[0] = kept
	for i, p := range b.Printers {
		if fp, ok := p.(*file.Printer); ok && fp == fresh {
			b.Printers[i] = kept
		}
	}
	fresh.Close(context.Background())
}

// closeFilesNotIn closes the file printers of b that next does not use.
func (b *Built) closeFilesNotIn(ctx context.Context, next *Built) error {
	var first error
	for _, fp := range b.Files {
		if next != nil && slices.Contains(next.Files, fp) {
			continue
		}
		if err := fp.Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
