package plog

/*
Sinks.

A Printer renders finished lines somewhere (console, file, another logging
library). A PrinterSet is an immutable, ordered fan-out over printers. Outputs
is the reconfigurable holder of the current PrinterSet: changes build a new
set under the write lock, printing holds the read lock for the whole fan-out,
so a print always sees either the complete old set or the complete new one.
*/

import (
	"io"
	"os"
	"reflect"
	"slices"
	"sync"
)

// Printer receives finished log lines. Implementations shared between
// loggers have to be safe for concurrent use.
type Printer interface {
	Println(level Level, tag, msg string)
}

// PrinterSet is an immutable ordered set of printers.
type PrinterSet struct {
	printers []Printer
	fallbck  io.Writer
}

// NewPrinterSet captures printers (nils are dropped) in the given order.
// Panics of a member are reported to os.Stderr.
func NewPrinterSet(printers ...Printer) PrinterSet {
	return newPrinterSet(os.Stderr, printers)
}

func newPrinterSet(fallback io.Writer, printers []Printer) PrinterSet {
	set := PrinterSet{fallbck: fallback}
	for _, p := range printers {
		if p != nil {
			set.printers = append(set.printers, p)
		}
	}
	return set
}

// WithFallback returns the same set reporting member panics to w
// (io.Discard for nil).
func (s PrinterSet) WithFallback(w io.Writer) PrinterSet {
	if w == nil {
		w = io.Discard
	}
	s.fallbck = w
	return s
}

func (s PrinterSet) Len() int { return len(s.printers) }

func (s PrinterSet) Printers() []Printer { return slices.Clone(s.printers) }

// Println hands the line to every member in order. A member that panics is
// reported to the fallback writer and the remaining members still print.
func (s PrinterSet) Println(level Level, tag, msg string) {
	for _, p := range s.printers {
		s.printOne(p, level, tag, msg)
	}
}

func (s PrinterSet) printOne(p Printer, level Level, tag, msg string) {
	defer func() {
		if r := recover(); r != nil {
			s.fbckWriteln(_ERROR_MESSAGE_PANIC_PRINTING + panicDesc(r))
		}
	}()
	p.Println(level, tag, msg)
}

func (s PrinterSet) fbckWriteln(str string) {
	if s.fallbck != nil {
		s.fallbck.Write([]byte(str + "\n"))
	}
}

// Outputs holds the active PrinterSet of one or more loggers.
type Outputs struct {
	printMtx sync.RWMutex
	set      PrinterSet
}

func NewOutputs(printers ...Printer) *Outputs {
	return &Outputs{set: NewPrinterSet(printers...)}
}

// Println prints to the current set while holding the read lock, so no
// reconfiguration can happen in the middle of a fan-out.
func (o *Outputs) Println(level Level, tag, msg string) {
	o.printMtx.RLock()
	defer o.printMtx.RUnlock()
	o.set.Println(level, tag, msg)
}

// Snapshot returns the set currently in use.
func (o *Outputs) Snapshot() PrinterSet {
	o.printMtx.RLock()
	defer o.printMtx.RUnlock()
	return o.set
}

// Add appends printers not yet present. Nil printers are ignored.
func (o *Outputs) Add(printers ...Printer) *Outputs {
	return o.operate(func(cur []Printer) []Printer {
		for _, p := range printers {
			if p != nil && !containsPrinter(cur, p) {
				cur = append(cur, p)
			}
		}
		return cur
	})
}

// Remove drops the given printers. Unknown printers are ignored.
func (o *Outputs) Remove(printers ...Printer) *Outputs {
	return o.operate(func(cur []Printer) []Printer {
		return slices.DeleteFunc(cur, func(p Printer) bool {
			return containsPrinter(printers, p)
		})
	})
}

// Replace swaps the whole set at once.
func (o *Outputs) Replace(printers ...Printer) *Outputs {
	return o.operate(func([]Printer) []Printer { return printers })
}

// Clear removes all printers.
func (o *Outputs) Clear() *Outputs {
	return o.operate(func([]Printer) []Printer { return nil })
}

// SetFallback sets where member panics are reported (io.Discard for nil).
func (o *Outputs) SetFallback(w io.Writer) *Outputs {
	o.printMtx.Lock()
	defer o.printMtx.Unlock()
	o.set = o.set.WithFallback(w)
	return o
}

// Helper building the next set from a copy of the current printers, with
// the print lock held for writing.
func (o *Outputs) operate(operation func(cur []Printer) []Printer) *Outputs {
	o.printMtx.Lock()
	defer o.printMtx.Unlock()
	o.set = newPrinterSet(o.set.fallbck, operation(o.set.Printers()))
	return o
}

// containsPrinter compares by identity; printers of non-comparable dynamic
// types never match.
func containsPrinter(list []Printer, p Printer) bool {
	if !reflect.TypeOf(p).Comparable() {
		return false
	}
	for _, q := range list {
		if q != nil && reflect.TypeOf(q) == reflect.TypeOf(p) && q == p {
			return true
		}
	}
	return false
}
