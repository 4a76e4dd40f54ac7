// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"github.com/sirupsen/logrus"

	"github.com/ik5/oggstream/codec"
	"github.com/ik5/oggstream/metrics"
)

// Option configures a Decoder.
type Option func(*Decoder)

// WithEngine sets the synthesis engine. The default decodes real Vorbis
// streams with the formats/vorbis engine.
func WithEngine(e codec.SynthesisEngine) Option {
	return func(d *Decoder) { d.engine = e }
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Decoder) { d.log = l }
}

// WithMetrics records decoder activity into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Decoder) { d.metrics = m }
}

// WithDiagnostics sets a hook called with every non-fatal problem met while
// decoding: ErrCorruptPage and ErrUnsupportedStream, wrapped with details.
func WithDiagnostics(fn func(error)) Option {
	return func(d *Decoder) { d.diag = fn }
}
