package plog

/*
Log levels and level naming.

Levels are plain ints on an open scale. Five of them have names, everything
below VERBOSE or above ERROR is named relative to the nearest named level
("VERBOSE-3", "E+2"). LVL_ALL and LVL_NONE are thresholds only: a logger
configured with LVL_ALL prints everything, with LVL_NONE nothing, and
neither of them is ever the level of a printed entry.
*/

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Level int

const (
	LVL_VERBOSE Level = iota + 2
	LVL_DEBUG
	LVL_INFO
	LVL_WARN
	LVL_ERROR
)

const (
	LVL_ALL  Level = math.MinInt // threshold: print everything
	LVL_NONE Level = math.MaxInt // threshold: print nothing
)

// LevelMap holds one name per named level, LVL_VERBOSE first.
type LevelMap [LVL_ERROR - LVL_VERBOSE + 1]string

// Predefined full level names.
var LevelFullNames = &LevelMap{
	"VERBOSE", //LVL_VERBOSE
	"DEBUG",   //LVL_DEBUG
	"INFO",    //LVL_INFO
	"WARN",    //LVL_WARN
	"ERROR",   //LVL_ERROR
}

// Predefined short level names.
var LevelShortNames = &LevelMap{
	"V", //LVL_VERBOSE
	"D", //LVL_DEBUG
	"I", //LVL_INFO
	"W", //LVL_WARN
	"E", //LVL_ERROR
}

// LevelName returns the full name of a level, e.g. "INFO", "VERBOSE-1" or "ERROR+2".
func LevelName(level Level) string {
	return levelName(level, LevelFullNames)
}

// LevelShortName returns the one-letter name of a level, e.g. "I", "V-1" or "E+2".
func LevelShortName(level Level) string {
	return levelName(level, LevelShortNames)
}

func (l Level) String() string {
	return LevelName(l)
}

// IsSentinel reports whether the level is one of the threshold-only values.
func (l Level) IsSentinel() bool {
	return l == LVL_ALL || l == LVL_NONE
}

func levelName(level Level, names *LevelMap) string {
	switch {
	case level < LVL_VERBOSE:
		return names[0] + "-" + distance(LVL_VERBOSE, level)
	case level > LVL_ERROR:
		return names[len(names)-1] + "+" + distance(level, LVL_ERROR)
	default:
		return names[level-LVL_VERBOSE]
	}
}

// distance returns hi-lo as a decimal string. The subtraction is done in
// uint64 so that it can't overflow next to the sentinels.
func distance(hi, lo Level) string {
	return strconv.FormatUint(uint64(int64(hi))-uint64(int64(lo)), 10)
}

// ParseLevel converts a full or short level name (case-insensitive) into a
// Level. "ALL" and "NONE" are accepted for thresholds.
func ParseLevel(name string) (Level, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	switch s {
	case "ALL":
		return LVL_ALL, nil
	case "NONE":
		return LVL_NONE, nil
	}
	for i := range LevelFullNames {
		if s == LevelFullNames[i] || s == LevelShortNames[i] {
			return LVL_VERBOSE + Level(i), nil
		}
	}
	return LVL_NONE, errors.Errorf(_ERROR_MESSAGE_UNKNOWN_LEVEL+": %q", name)
}

// Converts a panic value into a compact readable string (used when
// translating panics into fallback messages)
func panicDesc(panic any) (errtext string) {
	switch v := panic.(type) {
	case string:
		errtext = ": `" + v + "`"
	case error:
		errtext = ": (error) `" + v.Error() + "`"
	default:
		errtext = " " + _ERROR_UNKNOWN_PANIC_TEXT
	}
	return errtext
}

// PanicDesc is panicDesc for the sibling packages (file, crash).
func PanicDesc(panic any) string {
	return panicDesc(panic)
}
