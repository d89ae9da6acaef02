package plog

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_PrinterSet_Order(t *testing.T) {
	var order []string
	mk := func(name string) Printer {
		return funcPrinter(func(Level, string, string) { order = append(order, name) })
	}
	set := NewPrinterSet(mk("a"), nil, mk("b"), mk("c"))
	assert.Equal(t, 3, set.Len())
	set.Println(LVL_INFO, "T", "m")
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func Test_PrinterSet_PanicIsolation(t *testing.T) {
	ferr := &FakeWriter{}
	before, after := &FakePrinter{}, &FakePrinter{}
	set := NewPrinterSet(before, &PanicPrinter{}, &NilPanicPrinter{}, after).WithFallback(ferr)
	assert.NotPanics(t, func() { set.Println(LVL_WARN, "T", "m") })
	assert.Len(t, before.Lines(), 1)
	assert.Len(t, after.Lines(), 1)
	assert.Contains(t, ferr.String(), _ERROR_MESSAGE_PANIC_PRINTING+": `"+panicStr+"`\n")
	assert.Contains(t, ferr.String(), _ERROR_MESSAGE_PANIC_PRINTING+": (error) `")
	assert.Equal(t, 2, strings.Count(ferr.String(), "\n"))

	quiet := set.WithFallback(nil)
	assert.NotPanics(t, func() { quiet.Println(LVL_WARN, "T", "m") })
	assert.Equal(t, 2, strings.Count(ferr.String(), "\n"), "WithFallback changed the original set")
}

func Test_Outputs_Operations(t *testing.T) {
	p1, p2, p3 := &FakePrinter{}, &FakePrinter{}, &FakePrinter{}
	fn := funcPrinter(func(Level, string, string) {})
	o := NewOutputs(p1)
	o.Add(p2, p1, nil, p2, fn, fn)
	printers := o.Snapshot().Printers()
	require.Len(t, printers, 4)
	assert.Same(t, p1, printers[0])
	assert.Same(t, p2, printers[1])

	o.Remove(p1, p3, fn)
	assert.Equal(t, 3, o.Snapshot().Len(), "non-comparable printers are never matched")

	o.Replace(p3)
	o.Println(LVL_INFO, "T", "m")
	assert.Empty(t, p1.Lines())
	assert.Empty(t, p2.Lines())
	assert.Len(t, p3.Lines(), 1)

	o.Clear()
	o.Println(LVL_INFO, "T", "m")
	assert.Len(t, p3.Lines(), 1)
	assert.Zero(t, o.Snapshot().Len())
}

func Test_Outputs_SetFallback(t *testing.T) {
	ferr := &FakeWriter{}
	o := NewOutputs(&PanicPrinter{}).SetFallback(ferr)
	o.Add(&FakePrinter{})
	o.Println(LVL_INFO, "T", "m")
	assert.Contains(t, ferr.String(), panicStr, "fallback lost after Add")

	o.SetFallback(nil)
	assert.NotPanics(t, func() { o.Println(LVL_INFO, "T", "m") })
	assert.Equal(t, 1, strings.Count(ferr.String(), "\n"))
}

// Every entry printed while the set is being swapped reaches either all the
// printers of the old set or all the printers of the new one.
func Test_Outputs_AtomicSwap(t *testing.T) {
	const _ROUNDS_ = 2000
	oldA, oldB := &FakePrinter{}, &FakePrinter{}
	newA, newB := &FakePrinter{}, &FakePrinter{}
	o := NewOutputs(oldA, oldB)
	l := NewLoggerWithOutputs(nil, o)

	var wg sync.WaitGroup
	wg.Go(func() {
		for i := range _ROUNDS_ {
			l.Logf(LVL_INFO, "T", "%d", i)
		}
	})
	wg.Go(func() {
		for i := range _ROUNDS_ {
			if i%2 == 0 {
				o.Replace(newA, newB)
			} else {
				o.Replace(oldA, oldB)
			}
		}
	})
	wg.Wait()

	assert.Equal(t, oldA.Msgs(), oldB.Msgs())
	assert.Equal(t, newA.Msgs(), newB.Msgs())
	assert.Equal(t, _ROUNDS_, len(oldA.Lines())+len(newA.Lines()))
}

func Test_ConsolePrinter(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		w := &FakeWriter{}
		p := NewConsolePrinterTo(w, false)
		p.Println(LVL_INFO, "NET", "up")
		p.Println(LVL_ERROR+2, "NET", "a\nb")
		assert.Equal(t, "I/NET: up\nE+2/NET: a\nE+2/NET: b\n", w.String())
	})
	t.Run("colored", func(t *testing.T) {
		w := &FakeWriter{}
		p := NewConsolePrinterTo(w, true)
		p.Println(LVL_INFO, "NET", "up")
		assert.Contains(t, w.String(), "\x1b[32m")
		assert.Contains(t, w.String(), "I/NET: up")
		assert.Contains(t, w.String(), "\x1b[0m")
	})
	t.Run("nil writer", func(t *testing.T) {
		assert.NotPanics(t, func() { NewConsolePrinterTo(nil, true).Println(LVL_WARN, "T", "m") })
	})
}

func Test_levelColor(t *testing.T) {
	assert.Same(t, LevelColors[LVL_WARN], levelColor(LVL_WARN))
	assert.Same(t, beyondErrorColor, levelColor(LVL_ERROR+1))
	assert.Same(t, LevelColors[LVL_VERBOSE], levelColor(LVL_VERBOSE-1))
}

func Test_WriterPrinter(t *testing.T) {
	w := &FakeWriter{}
	p := NewWriterPrinter(w, nil)
	p.now = fixedNow
	p.Println(LVL_DEBUG, "DB", "q\nr")
	assert.Equal(t, "1700000000123|D|DB|q\nr\n", w.String())

	w = &FakeWriter{}
	custom := NewWriterPrinter(w, func(_ time.Time, level Level, tag, msg string) string {
		return LevelName(level) + " " + tag + " " + msg
	})
	custom.Println(LVL_WARN, "DB", "slow")
	assert.Equal(t, "WARN DB slow\n", w.String())
	assert.NotPanics(t, func() { NewWriterPrinter(nil, nil).Println(LVL_INFO, "T", "m") })
	assert.IsType(t, io.Discard, NewWriterPrinter(nil, nil).out)
}
