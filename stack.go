package plog

import (
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/petermattis/goid"
)

const _STACK_BUFFER = 64

// pkgPrefix is this package's function name prefix, e.g.
// "github.com/abyssdigger/plog.". Frames carrying it belong to the logger.
var pkgPrefix = func() string {
	name := runtime.FuncForPC(reflect.ValueOf(pkgAnchor).Pointer()).Name()
	return name[:strings.LastIndex(name, ".")+1]
}()

func pkgAnchor() {}

// captureStack returns the caller's stack, cropped: the logger's own frames
// at the top are skipped, then the frames whose function starts with origin
// (a helper layer wrapping the logger), then at most depth frames are kept
// (0 keeps all).
func captureStack(origin string, depth int) []string {
	frames := runtime.CallersFrames(callers(3))
	var out []string
	skipping, skippingOrigin := true, origin != ""
	for {
		f, more := frames.Next()
		if skipping && strings.HasPrefix(f.Function, pkgPrefix) {
			if !more {
				break
			}
			continue
		}
		skipping = false
		if skippingOrigin && strings.HasPrefix(f.Function, origin) {
			if !more {
				break
			}
			continue
		}
		skippingOrigin = false
		if f.Function != "" {
			out = append(out, f.Function+"("+filepath.Base(f.File)+":"+strconv.Itoa(f.Line)+")")
		}
		if !more || (depth > 0 && len(out) >= depth) {
			break
		}
	}
	return out
}

// callers returns every program counter of the calling goroutine above
// skip, growing the buffer until the whole stack fits.
func callers(skip int) []uintptr {
	pcs := make([]uintptr, _STACK_BUFFER)
	for {
		n := runtime.Callers(skip, pcs)
		if n < len(pcs) {
			return pcs[:n]
		}
		pcs = make([]uintptr, 2*len(pcs))
	}
}

// goroutineID identifies the calling goroutine for thread info.
func goroutineID() int64 {
	return goid.Get()
}
