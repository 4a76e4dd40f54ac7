// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "oggstream"

// Metrics holds the Prometheus collectors for the decoder and encoder.
//
// All methods are safe to call on a nil *Metrics, so components can record
// unconditionally.
type Metrics struct {
	// Decoder metrics
	DecoderBytes        prometheus.Counter
	DecoderPages        prometheus.Counter
	DecoderFrames       prometheus.Counter
	DecoderCorruptPages prometheus.Counter
	DecoderErrors       prometheus.Counter

	// Encoder metrics
	EncoderPages  prometheus.Counter
	EncoderBytes  prometheus.Counter
	EncoderFrames prometheus.Counter
}

// New creates the collectors and registers them with reg. A nil reg creates
// unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	counter := func(subsystem, name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &Metrics{
		DecoderBytes:        counter("decoder", "bytes_total", "Total number of bytes written to decoders"),
		DecoderPages:        counter("decoder", "pages_total", "Total number of audio pages decoded"),
		DecoderFrames:       counter("decoder", "frames_total", "Total number of PCM frames delivered by decoders"),
		DecoderCorruptPages: counter("decoder", "corrupt_pages_total", "Total number of corrupt or missing pages skipped"),
		DecoderErrors:       counter("decoder", "errors_total", "Total number of fatal decode errors"),

		EncoderPages:  counter("encoder", "pages_total", "Total number of pages emitted by encoders"),
		EncoderBytes:  counter("encoder", "bytes_total", "Total number of bytes emitted by encoders"),
		EncoderFrames: counter("encoder", "frames_total", "Total number of PCM frames written to encoders"),
	}
}

// ReceivedBytes records n bytes of decoder input.
func (m *Metrics) ReceivedBytes(n int) {
	if m == nil {
		return
	}
	m.DecoderBytes.Add(float64(n))
}

// DecodedPage records one audio page taken in by a decoder.
func (m *Metrics) DecodedPage() {
	if m == nil {
		return
	}
	m.DecoderPages.Inc()
}

// DecodedFrames records n frames handed to a frame callback.
func (m *Metrics) DecodedFrames(n int) {
	if m == nil {
		return
	}
	m.DecoderFrames.Add(float64(n))
}

// CorruptPage records a skipped corrupt or missing page.
func (m *Metrics) CorruptPage() {
	if m == nil {
		return
	}
	m.DecoderCorruptPages.Inc()
}

// DecodeError records a fatal decode error.
func (m *Metrics) DecodeError() {
	if m == nil {
		return
	}
	m.DecoderErrors.Inc()
}

// EncodedPage records one emitted page of size bytes.
func (m *Metrics) EncodedPage(size int) {
	if m == nil {
		return
	}
	m.EncoderPages.Inc()
	m.EncoderBytes.Add(float64(size))
}

// EncodedFrames records n frames submitted to an encoder.
func (m *Metrics) EncodedFrames(n int) {
	if m == nil {
		return
	}
	m.EncoderFrames.Add(float64(n))
}
