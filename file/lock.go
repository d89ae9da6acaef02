package file

import "sync"

// DirLock serializes mutations of log directories between every component
// writing there (file printers, the crash reporter). Appends take it for
// writing; retention sweeps and archiving take it for reading. Share one
// DirLock between all components working on overlapping directories.
type DirLock struct {
	sync.RWMutex
}

func NewDirLock() *DirLock {
	return &DirLock{}
}
