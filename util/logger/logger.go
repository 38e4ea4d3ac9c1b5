package logger

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mitchellh/colorstring"
	"golang.org/x/term"

	"bjoernblessin.de/udpfilereceiver/util/assert"
)

type LogLevel int

const (
	None LogLevel = iota
	Warn
	Info
	Debug
	Trace
)

const LOG_LEVEL_ENV = "LOG_LEVEL"

var logLevel LogLevel

var colorize = colorstring.Colorize{
	Colors: colorstring.DefaultColors,
	Reset:  true,
}

func init() {
	colorize.Disable = !term.IsTerminal(int(os.Stderr.Fd()))

	envvar, present := os.LookupEnv(LOG_LEVEL_ENV)
	if !present {
		logLevel = Info
		return
	}

	level, ok := ParseLogLevel(envvar)
	if !ok {
		logLevel = Info
		Warnf("Unknown log level '%s', defaulting to INFO", envvar)
		return
	}
	logLevel = level
}

// ParseLogLevel converts a level name (case-insensitive) to a LogLevel.
func ParseLogLevel(name string) (LogLevel, bool) {
	switch strings.ToUpper(name) {
	case "NONE":
		return None, true
	case "WARN":
		return Warn, true
	case "INFO":
		return Info, true
	case "DEBUG":
		return Debug, true
	case "TRACE":
		return Trace, true
	default:
		return Info, false
	}
}

func (l LogLevel) String() string {
	switch l {
	case None:
		return "NONE"
	case Warn:
		return "WARN"
	case Info:
		return "INFO"
	case Debug:
		return "DEBUG"
	case Trace:
		return "TRACE"
	default:
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
}

// SetLogLevel changes the level for all following log calls.
func SetLogLevel(level LogLevel) {
	logLevel = level
}

func GetLogLevel() LogLevel {
	return logLevel
}

func prefix(color string, tag string) string {
	return "[" + colorize.Color("["+color+"]"+tag) + "]"
}

// Errorf prints an error message prefixed with "[ERROR] " and stops execution.
// After Errorf nothing will be executed anymore.
// A newline is added to the end of the message.
func Errorf(format string, v ...any) {
	log.Fatalf(prefix("red", "ERROR")+" "+format, v...)
	assert.Never()
}

// Panicf acts similar to [Errorf] but panics.
// All deferred functions will execute and a stack trace is printed.
// Technically you can recover from the panic, but that's not intended use.
func Panicf(format string, v ...any) {
	log.Panicf(prefix("red", "ERROR")+" "+format, v...)
	assert.Never()
}

// Warnf prints a message prefixed with "[WARN] ".
// A newline is added to the end of the message.
func Warnf(format string, v ...any) {
	if logLevel < Warn {
		return
	}
	log.Printf(prefix("yellow", "WARN")+" "+format, v...)
}

// Infof prints an informational message prefixed with "[INFO] ".
// A newline is added to the end of the message.
func Infof(format string, v ...any) {
	if logLevel < Info {
		return
	}
	log.Printf(prefix("green", "INFO")+" "+format, v...)
}

// Debugf prints a debug message prefixed with "[DEBUG] ".
// A newline is added to the end of the message.
func Debugf(format string, v ...any) {
	if logLevel < Debug {
		return
	}
	log.Printf(prefix("cyan", "DEBUG")+" "+format, v...)
}

// Tracef prints a very verbose message prefixed with "[TRACE] ".
func Tracef(format string, v ...any) {
	if logLevel < Trace {
		return
	}
	log.Printf(prefix("dark_gray", "TRACE")+" "+format, v...)
}
