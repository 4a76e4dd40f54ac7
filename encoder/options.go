// SPDX-License-Identifier: EPL-2.0

package encoder

import (
	"github.com/sirupsen/logrus"

	"github.com/ik5/oggstream/metrics"
)

// Option configures an Encoder.
type Option func(*Encoder)

// WithSerial sets the serial number of the logical stream. By default a
// random serial is used.
func WithSerial(serial uint32) Option {
	return func(e *Encoder) {
		e.serial = serial
		e.serialSet = true
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Encoder) { e.log = l }
}

// WithMetrics records encoder activity into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Encoder) { e.metrics = m }
}
