package file

import (
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
)

// Archive zips the regular files of dir into zipPath (deflate, flat layout,
// modification times kept). The zip file itself is skipped when it lives in
// dir. lock, if not nil, is held for reading so no append or crash report
// lands halfway through a file being copied.
func Archive(dir, zipPath string, lock *DirLock) (n int, err error) {
	if lock != nil {
		lock.RLock()
		defer lock.RUnlock()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.Wrap(err, _ERROR_MESSAGE_ARCHIVE)
	}
	out, err := os.Create(zipPath)
	if err != nil {
		return 0, errors.Wrap(err, _ERROR_MESSAGE_ARCHIVE)
	}
	defer func() {
		if e := out.Close(); err == nil && e != nil {
			err = errors.Wrap(e, _ERROR_MESSAGE_ARCHIVE)
		}
	}()
	zipAbs, _ := filepath.Abs(zipPath)
	zw := zip.NewWriter(out)
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if abs, _ := filepath.Abs(path); abs == zipAbs {
			continue
		}
		if err = addToZip(zw, path, e); err != nil {
			zw.Close()
			return n, errors.Wrap(err, _ERROR_MESSAGE_ARCHIVE)
		}
		n++
	}
	if err = zw.Close(); err != nil {
		return n, errors.Wrap(err, _ERROR_MESSAGE_ARCHIVE)
	}
	return n, nil
}

func addToZip(zw *zip.Writer, path string, e os.DirEntry) error {
	info, err := e.Info()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Method = zip.Deflate
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
