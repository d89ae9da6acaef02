package plog

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Predefined level colors for the console (forced on, the printer decides
// whether to use them).
var LevelColors = map[Level]*color.Color{
	LVL_VERBOSE: forced(color.New(color.FgHiBlack)),
	LVL_DEBUG:   forced(color.New(color.FgCyan)),
	LVL_INFO:    forced(color.New(color.FgGreen)),
	LVL_WARN:    forced(color.New(color.FgYellow)),
	LVL_ERROR:   forced(color.New(color.FgRed)),
}

var beyondErrorColor = forced(color.New(color.FgHiRed, color.Bold))

func forced(c *color.Color) *color.Color {
	c.EnableColor()
	return c
}

// ConsolePrinter writes "<short level>/<tag>: <msg>" lines, every line of a
// multi-line message prefixed the same way, optionally colored by level.
type ConsolePrinter struct {
	mtx     sync.Mutex
	out     io.Writer
	colored bool
}

// NewConsolePrinter prints to stdout, colored only when stdout is a terminal.
func NewConsolePrinter() *ConsolePrinter {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return NewConsolePrinterTo(colorable.NewColorableStdout(), tty)
}

// NewConsolePrinterTo prints to w; colored forces ANSI colors on or off.
func NewConsolePrinterTo(w io.Writer, colored bool) *ConsolePrinter {
	if w == nil {
		w = io.Discard
	}
	return &ConsolePrinter{out: w, colored: colored}
}

func (p *ConsolePrinter) Println(level Level, tag, msg string) {
	prefix := LevelShortName(level) + "/" + tag + ": "
	var sb strings.Builder
	for _, line := range strings.Split(msg, "\n") {
		sb.WriteString(prefix + line + "\n")
	}
	text := sb.String()
	if p.colored {
		text = levelColor(level).Sprint(text)
	}
	p.mtx.Lock()
	defer p.mtx.Unlock()
	io.WriteString(p.out, text)
}

func levelColor(level Level) *color.Color {
	c, ok := LevelColors[level]
	if !ok {
		if level > LVL_ERROR {
			c = beyondErrorColor
		} else {
			c = LevelColors[LVL_VERBOSE]
		}
	}
	return c
}

// WriterPrinter writes flattened lines to any io.Writer, one write per entry.
type WriterPrinter struct {
	mtx     sync.Mutex
	out     io.Writer
	flatten Flattener
	now     func() time.Time
}

// NewWriterPrinter writes to w using flatten (DefaultFlattener for nil).
func NewWriterPrinter(w io.Writer, flatten Flattener) *WriterPrinter {
	if flatten == nil {
		flatten = DefaultFlattener
	}
	if w == nil {
		w = io.Discard
	}
	return &WriterPrinter{out: w, flatten: flatten, now: time.Now}
}

func (p *WriterPrinter) Println(level Level, tag, msg string) {
	line := p.flatten(p.now(), level, tag, msg) + "\n"
	p.mtx.Lock()
	defer p.mtx.Unlock()
	io.WriteString(p.out, line)
}
