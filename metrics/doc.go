// SPDX-License-Identifier: EPL-2.0

// Package metrics exposes Prometheus counters for the streaming decoder and
// encoder.
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	dec := decoder.New(onFrames, decoder.WithMetrics(m))
//
// Metric names are prefixed with "oggstream_decoder_" or "oggstream_encoder_".
package metrics
