// Package log defines the small logging interface gbcore's components take
// at construction, so the core never commits to a concrete backend.
package log

import (
	stdlog "log"
	"os"
)

// Logger is implemented by anything that can report the core's recoverable
// oddities: unexpected header fields, save-file size mismatches, dropped
// link-cable bytes.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// standard is the default Logger, built on the standard library's log.Logger.
type standard struct {
	l *stdlog.Logger
}

// Standard returns a Logger that writes level-prefixed lines to stderr.
func Standard() Logger {
	return &standard{l: stdlog.New(os.Stderr, "", stdlog.LstdFlags)}
}

func (s *standard) Debugf(format string, args ...interface{}) { s.l.Printf("[DEBUG] "+format, args...) }
func (s *standard) Infof(format string, args ...interface{})  { s.l.Printf("[INFO] "+format, args...) }
func (s *standard) Warnf(format string, args ...interface{})  { s.l.Printf("[WARN] "+format, args...) }
func (s *standard) Errorf(format string, args ...interface{}) { s.l.Printf("[ERROR] "+format, args...) }
