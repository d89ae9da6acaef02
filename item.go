package plog

// LogItem is the record handed through the interceptor chain. One is built
// per emission after formatting and is dropped right after printing.
type LogItem struct {
	Level          Level
	Tag            string
	ThreadInfo     string // empty unless thread info is enabled
	StackTraceInfo string // empty unless stack traces are enabled
	Msg            string
}
