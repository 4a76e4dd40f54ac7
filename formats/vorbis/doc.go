// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Vorbis decoding on top of the jfreymuth libraries.
//
// Two entry points cover the two ways audio arrives:
//
//   - Engine is a codec.SynthesisEngine backed by github.com/jfreymuth/vorbis.
//     The decoder package uses it by default to turn packets from a chunked
//     byte stream into PCM.
//   - Decoder opens a complete Ogg Vorbis file through
//     github.com/jfreymuth/oggvorbis and returns an audio.Source, for input
//     that is already fully available.
//
// # Whole Files
//
//	f, _ := os.Open("audio.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	buf := make([]float32, src.BufSize())
//	n, err := src.ReadSamples(buf)
//
// Samples are interleaved float32 in [-1.0, 1.0]:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// # Streams
//
//	dec := decoder.New(onFrames, decoder.WithEngine(vorbis.Engine{}))
//
// The engine checks header order itself and requires the identification
// header to start the logical stream. Synthesis output is buffered per
// channel until the caller consumes it.
package vorbis
