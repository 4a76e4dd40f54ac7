// SPDX-License-Identifier: EPL-2.0

// Package logging builds the logrus loggers used across the module.
package logging

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// New returns a logger writing to out at the given level. Format is "text"
// or "json"; empty means text.
func New(out io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(lvl)

	switch format {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}
	return l, nil
}

// ForStream tags l with the component name and a fresh stream ID. A nil l
// yields a discarding logger.
func ForStream(l logrus.FieldLogger, component string) logrus.FieldLogger {
	if l == nil {
		l = Discard()
	}
	return l.WithFields(logrus.Fields{
		"component": component,
		"stream_id": uuid.NewString(),
	})
}
