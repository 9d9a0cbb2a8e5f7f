package internal

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

var (
	logLevel = LogLevelInfo
	logger   = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "chatgpt-export",
		Level:           log.InfoLevel,
	})
)

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	logLevel = level
	logger.SetLevel(level.charmLevel())
}

func (l LogLevel) charmLevel() log.Level {
	switch l {
	case LogLevelError:
		return log.ErrorLevel
	case LogLevelWarn:
		return log.WarnLevel
	case LogLevelDebug:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// GetLogLevel returns the current global log level
func GetLogLevel() LogLevel {
	return logLevel
}

// SetVerbose enables verbose (debug) logging
func SetVerbose(verbose bool) {
	if verbose {
		SetLogLevel(LogLevelDebug)
	} else {
		SetLogLevel(LogLevelInfo)
	}
}

// SetQuiet limits logging to errors
func SetQuiet(quiet bool) {
	if quiet {
		SetLogLevel(LogLevelError)
	} else {
		SetLogLevel(LogLevelInfo)
	}
}

// SetLogOutput redirects log output, mainly for tests
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// LogWarn logs a warning message
func LogWarn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// LogInfo logs an info message
func LogInfo(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}
