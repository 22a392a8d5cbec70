// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Environment variables read by Init.
const (
	EnvFormat = "COVIDETL_LOG_FORMAT"
	EnvLevel  = "COVIDETL_LOG_LEVEL"
)

// Init configures logging on stderr. Verbose enables debug output; otherwise
// only warnings and errors are shown unless COVIDETL_LOG_LEVEL says otherwise.
func Init(verbose bool) {
	Configure(logrus.StandardLogger(), os.Stderr, verbose, os.Getenv(EnvFormat), os.Getenv(EnvLevel))
}

// Configure applies the output, formatter and level to l.
func Configure(l *logrus.Logger, out io.Writer, verbose bool, format, level string) {
	l.SetOutput(out)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	switch {
	case verbose:
		l.SetLevel(logrus.DebugLevel)
	case level != "":
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			lvl = logrus.WarnLevel
		}
		l.SetLevel(lvl)
	default:
		l.SetLevel(logrus.WarnLevel)
	}
}
