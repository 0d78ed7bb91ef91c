// Package logx is a small leveled line logger. Each line is formatted in
// full and handed to the writer in one Write call, so writers that push
// into a ring (the console) never interleave partial lines. Lines are built
// in a fixed stack buffer and cut at lineMax bytes, newline included.
package logx

import (
	"io"
	"sync"

	"bspcore-go/x/fmtx"
)

type Level uint8

const (
	Debug Level = iota
	Info
	Warn
	Error
	Off
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "OFF"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "LEVEL?"
}

// ParseLevel accepts the lower- or upper-case level names.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "debug", "DEBUG":
		return Debug, true
	case "", "info", "INFO":
		return Info, true
	case "warn", "WARN":
		return Warn, true
	case "error", "ERROR":
		return Error, true
	case "off", "OFF":
		return Off, true
	}
	return Info, false
}

const lineMax = 160

type Logger struct {
	w     io.Writer
	name  string
	level Level
	mu    *sync.Mutex // shared by loggers derived with Named
}

func New(w io.Writer, name string, level Level) *Logger {
	return &Logger{w: w, name: name, level: level, mu: &sync.Mutex{}}
}

// Named returns a logger sharing the writer and level under another name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{w: l.w, name: name, level: l.level, mu: l.mu}
}

func (l *Logger) Enabled(level Level) bool { return level >= l.level && level < Off }

func (l *Logger) Debugf(format string, a ...any) { l.logf(Debug, format, a...) }
func (l *Logger) Infof(format string, a ...any)  { l.logf(Info, format, a...) }
func (l *Logger) Warnf(format string, a ...any)  { l.logf(Warn, format, a...) }
func (l *Logger) Errorf(format string, a ...any) { l.logf(Error, format, a...) }

func (l *Logger) logf(level Level, format string, a ...any) {
	if l == nil || !l.Enabled(level) {
		return
	}
	var line [lineMax]byte
	n := copy(line[:], level.String())
	n += copy(line[n:], " ")
	if l.name != "" {
		n += copy(line[n:], l.name)
		n += copy(line[n:], ": ")
	}
	n = min(n, lineMax-1)
	n += fmtx.Bprintf(line[n:lineMax-1], format, a...)
	line[n] = '\n'

	l.mu.Lock()
	_, _ = l.w.Write(line[:n+1])
	l.mu.Unlock()
}
