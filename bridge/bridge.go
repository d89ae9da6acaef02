// Package bridge forwards plog entries into other logging libraries, so an
// application already configured around logrus or zap can add plog's
// pipeline (interceptors, formatters, file sink) without a second output
// stack. The plog tag travels as a "tag" field.
package bridge

import (
	"github.com/abyssdigger/plog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	TAG_FIELD   = "tag"
	LEVEL_FIELD = "plog_level"
)

// LogrusPrinter prints to a logrus logger.
type LogrusPrinter struct {
	logger *logrus.Logger
}

func Logrus(l *logrus.Logger) *LogrusPrinter {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &LogrusPrinter{logger: l}
}

func (p *LogrusPrinter) Println(level plog.Level, tag, msg string) {
	p.logger.WithField(TAG_FIELD, tag).Log(LogrusLevel(level), msg)
}

// LogrusLevel maps plog levels onto logrus levels. Everything above ERROR
// stays at ErrorLevel: fatal and panic levels would end the program.
func LogrusLevel(level plog.Level) logrus.Level {
	switch {
	case level <= plog.LVL_VERBOSE:
		return logrus.TraceLevel
	case level == plog.LVL_DEBUG:
		return logrus.DebugLevel
	case level == plog.LVL_INFO:
		return logrus.InfoLevel
	case level == plog.LVL_WARN:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

// ZapPrinter prints to a zap logger. zap has no level below debug, so
// VERBOSE entries arrive as debug with the original level name in the
// "plog_level" field.
type ZapPrinter struct {
	logger *zap.Logger
}

func Zap(l *zap.Logger) *ZapPrinter {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapPrinter{logger: l}
}

func (p *ZapPrinter) Println(level plog.Level, tag, msg string) {
	if ce := p.logger.Check(ZapLevel(level), msg); ce != nil {
		ce.Write(zap.String(TAG_FIELD, tag), zap.String(LEVEL_FIELD, plog.LevelName(level)))
	}
}

// ZapLevel maps plog levels onto zap levels, capped at ErrorLevel.
func ZapLevel(level plog.Level) zapcore.Level {
	switch {
	case level <= plog.LVL_DEBUG:
		return zapcore.DebugLevel
	case level == plog.LVL_INFO:
		return zapcore.InfoLevel
	case level == plog.LVL_WARN:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
