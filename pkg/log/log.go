// Package log provides the logging interface used throughout
// the emulator, backed by logrus.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Logger is the interface the emulator logs through.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Tracef(format string, args ...interface{})
}

// New returns a Logger writing to stderr at the given level
// ("trace", "debug", "info", "warn", "error").
func New(level string) (Logger, error) {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a Logger writing to w at the given level.
func NewWithWriter(w io.Writer, level string) (Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    !isTerminal(w),
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}

	return l, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
