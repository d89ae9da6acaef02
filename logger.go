// Package plog is a levelled logging pipeline: entries pass a level gate,
// get formatted, run through an interceptor chain and are fanned out to any
// number of printers (console, rotating files, other logging libraries).
package plog

import (
	"sync/atomic"
)

// Logger emits log entries. It is safe for concurrent use; a zero Logger is
// not usable, create one with NewLogger or NewLoggerWithOutputs.
//
// Preferred usage example:
//
//	fp := file.New("/var/log/app")
//	logger := plog.NewLogger(plog.NewConfig(plog.WithLevel(plog.LVL_INFO)), plog.NewConsolePrinter(), fp)
//	log := logger.Client("NET")
//	log.Infof("listening on %s", addr)
type Logger struct {
	config  atomic.Pointer[Config]
	outputs *Outputs
}

// NewLogger creates a logger printing to its own Outputs holding printers.
// A nil cfg means NewConfig().
func NewLogger(cfg *Config, printers ...Printer) *Logger {
	return NewLoggerWithOutputs(cfg, NewOutputs(printers...))
}

// NewLoggerWithOutputs creates a logger printing to outs, which may be
// shared with other loggers.
func NewLoggerWithOutputs(cfg *Config, outs *Outputs) *Logger {
	if cfg == nil {
		cfg = NewConfig()
	}
	if outs == nil {
		outs = NewOutputs()
	}
	l := &Logger{outputs: outs}
	l.config.Store(cfg)
	return l
}

// Config returns the snapshot currently in use.
func (l *Logger) Config() *Config {
	return l.snapshot()
}

// Reconfigure publishes cfg; emissions already past the level gate finish
// with the previous snapshot. A nil cfg is ignored.
func (l *Logger) Reconfigure(cfg *Config) *Logger {
	if cfg != nil {
		l.snapshot()
		l.config.Store(cfg)
	}
	return l
}

// Outputs returns the reconfigurable printer set of the logger.
func (l *Logger) Outputs() *Outputs {
	l.snapshot()
	return l.outputs
}

// IsLoggable reports whether an entry of the given level would pass the gate.
func (l *Logger) IsLoggable(level Level) bool {
	return l.gate(level) != nil
}

// snapshot returns the current config and panics if the logger was never
// initialized.
func (l *Logger) snapshot() *Config {
	if l == nil {
		panic(ErrNotInitialized)
	}
	cfg := l.config.Load()
	if cfg == nil || l.outputs == nil {
		panic(ErrNotInitialized)
	}
	return cfg
}

// gate returns the config to emit with, or nil when the entry is filtered.
// Sentinel levels are never emitted.
func (l *Logger) gate(level Level) *Config {
	cfg := l.snapshot()
	if level.IsSentinel() || level < cfg.level {
		return nil
	}
	return cfg
}

/////////////////////////////////////////////////////////////////////////////////////////
/*
Emission variants. Every one of them checks the gate before any formatting,
so a filtered entry costs one atomic load and one comparison.
*/

// Log emits a plain message.
func (l *Logger) Log(level Level, tag, msg string) {
	if cfg := l.gate(level); cfg != nil {
		l.println(cfg, level, tag, msg)
	}
}

// Logf emits fmt.Sprintf(format, args...). An empty format joins the args
// with ", " instead.
func (l *Logger) Logf(level Level, tag, format string, args ...any) {
	if cfg := l.gate(level); cfg != nil {
		l.println(cfg, level, tag, formatArgs(format, args))
	}
}

// LogObject emits obj rendered by the formatter registered for its type
// (see WithObjectFormatter).
func (l *Logger) LogObject(level Level, tag string, obj any) {
	if cfg := l.gate(level); cfg != nil {
		l.println(cfg, level, tag, cfg.objects.format(obj))
	}
}

// LogArray emits a slice or array rendered deeply, e.g. "[1, [2, 3]]".
func (l *Logger) LogArray(level Level, tag string, arr any) {
	if cfg := l.gate(level); cfg != nil {
		l.println(cfg, level, tag, formatArray(arr))
	}
}

// LogErr emits msg followed by the rendered causal chain of err. With an
// empty msg only the chain is printed.
func (l *Logger) LogErr(level Level, tag, msg string, err error) {
	if cfg := l.gate(level); cfg != nil {
		text := cfg.err(err)
		if msg != "" {
			text = msg + "\n" + text
		}
		l.println(cfg, level, tag, text)
	}
}

// JSON emits a pretty-printed JSON string at DEBUG level; invalid JSON is
// printed as is.
func (l *Logger) JSON(tag, s string) {
	if cfg := l.gate(LVL_DEBUG); cfg != nil {
		l.println(cfg, LVL_DEBUG, tag, cfg.json(s))
	}
}

// XML emits a pretty-printed XML string at DEBUG level; invalid XML is
// printed as is.
func (l *Logger) XML(tag, s string) {
	if cfg := l.gate(LVL_DEBUG); cfg != nil {
		l.println(cfg, LVL_DEBUG, tag, cfg.xml(s))
	}
}

// println builds the LogItem, runs the interceptors and fans the final line
// out to the printers.
func (l *Logger) println(cfg *Config, level Level, tag, msg string) {
	if tag == "" {
		tag = cfg.tag
	}
	item := LogItem{Level: level, Tag: tag, Msg: msg}
	if cfg.withThread {
		item.ThreadInfo = cfg.thread(goroutineID())
	}
	if cfg.withStack {
		item.StackTraceInfo = cfg.stack(captureStack(cfg.stackOrigin, cfg.stackDepth))
	}
	item, ok := intercept(cfg.interceptors, item)
	if !ok {
		return
	}
	segments := []string{item.ThreadInfo, item.StackTraceInfo, item.Msg}
	var line string
	if cfg.withBorder {
		line = cfg.border(segments)
	} else {
		line = joinSegments(segments)
	}
	l.outputs.Println(item.Level, item.Tag, line)
}
