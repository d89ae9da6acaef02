package plog

import (
	"strconv"
	"time"
)

// Flattener turns one entry into one line (without the line separator) for
// line-oriented sinks such as files.
type Flattener func(t time.Time, level Level, tag, msg string) string

// DefaultFlattener produces "<unix millis>|<short level>|<tag>|<msg>".
func DefaultFlattener(t time.Time, level Level, tag, msg string) string {
	return strconv.FormatInt(t.UnixMilli(), 10) + "|" + LevelShortName(level) + "|" + tag + "|" + msg
}
