package plog

import (
	"runtime"
	"sync"
	"time"
)

const panicStr = "panic generated in printer"

type fakeLine struct {
	level Level
	tag   string
	msg   string
}

// FakePrinter records every line it gets.
type FakePrinter struct {
	mtx   sync.Mutex
	lines []fakeLine
}

func (f *FakePrinter) Println(level Level, tag, msg string) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.lines = append(f.lines, fakeLine{level, tag, msg})
}

func (f *FakePrinter) Lines() []fakeLine {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return append([]fakeLine(nil), f.lines...)
}

func (f *FakePrinter) Msgs() []string {
	var msgs []string
	for _, l := range f.Lines() {
		msgs = append(msgs, l.msg)
	}
	return msgs
}

type PanicPrinter struct{}

func (p *PanicPrinter) Println(Level, string, string) { panic(panicStr) }

type NilPanicPrinter struct{}

func (p *NilPanicPrinter) Println(Level, string, string) { panic(&runtime.PanicNilError{}) }

// funcPrinter has a non-comparable dynamic type.
type funcPrinter func(level Level, tag, msg string)

func (f funcPrinter) Println(level Level, tag, msg string) { f(level, tag, msg) }

type FakeWriter struct {
	mtx    sync.Mutex
	buffer []byte
}

func (f *FakeWriter) Write(b []byte) (int, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.buffer = append(f.buffer, b...)
	return len(b), nil
}

func (f *FakeWriter) String() string {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return string(f.buffer)
}

// newTestLogger returns a logger printing to a FakePrinter.
func newTestLogger(opts ...Option) (*Logger, *FakePrinter) {
	fp := &FakePrinter{}
	return NewLogger(NewConfig(opts...), fp), fp
}

func fixedNow() time.Time { return time.UnixMilli(1700000000123) }
