package file

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pkg/errors"
)

// Sweep deletes the regular files of dir last modified more than days*24h
// before now, leaving the names listed in keep alone. Nothing is scanned
// for deletion unless dir holds more regular files than days; days <= 0
// disables the sweep. It returns the names it removed.
//
// The caller holds the DirLock for reading.
func Sweep(dir string, days int, now time.Time, keep ...string) (removed []string, err error) {
	return SweepKeeping(dir, days, 0, now, keep...)
}

// SweepKeeping is Sweep with a floor: expired files are deleted oldest
// first, and deleting stops once only floor regular files are left.
func SweepKeeping(dir string, days, floor int, now time.Time, keep ...string) (removed []string, err error) {
	if days <= 0 {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, _ERROR_MESSAGE_SWEEP)
	}
	files := slices.DeleteFunc(entries, func(e os.DirEntry) bool { return !e.Type().IsRegular() })
	if len(files) <= days {
		return nil, nil
	}
	type expired struct {
		name  string
		mtime time.Time
	}
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	var old []expired
	for _, f := range files {
		if slices.Contains(keep, f.Name()) {
			continue
		}
		info, e := f.Info()
		if e != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		old = append(old, expired{f.Name(), info.ModTime()})
	}
	slices.SortStableFunc(old, func(a, b expired) int { return a.mtime.Compare(b.mtime) })
	left := len(files)
	for _, f := range old {
		if left <= floor {
			break
		}
		if e := os.Remove(filepath.Join(dir, f.name)); e != nil {
			if err == nil {
				err = errors.Wrap(e, _ERROR_MESSAGE_SWEEP)
			}
			continue
		}
		left--
		removed = append(removed, f.name)
	}
	return removed, err
}
