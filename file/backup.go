package file

import (
	"os"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
)

const DEFAULT_MAX_SIZE = 1 * units.MiB

// BackupStrategy decides whether the open file has to be moved aside before
// the next entry is written.
type BackupStrategy interface {
	ShouldBackup(path string) bool
}

// FileSizeBackupStrategy backs up files that grew past MaxSize bytes.
type FileSizeBackupStrategy struct {
	MaxSize int64
}

func (s FileSizeBackupStrategy) ShouldBackup(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > s.MaxSize
}

// NeverBackupStrategy lets files grow without limit.
type NeverBackupStrategy struct{}

func (NeverBackupStrategy) ShouldBackup(string) bool { return false }

// ParseSize parses a human readable size ("512k", "10MB", "1MiB") as a
// binary quantity (1MB == 1MiB).
func ParseSize(s string) (int64, error) {
	size, err := units.RAMInBytes(s)
	if err != nil {
		return 0, errors.Wrapf(err, _ERROR_MESSAGE_BAD_SIZE+" %q", s)
	}
	if size <= 0 {
		return 0, errors.Errorf(_ERROR_MESSAGE_BAD_SIZE+" %q", s)
	}
	return size, nil
}
