// SPDX-License-Identifier: EPL-2.0

// Package audio defines the PCM source abstraction shared by the format
// packages and the encoder helpers.
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 in [-1.0, 1.0]. ReadSamples returns io.EOF
// once the stream is exhausted, possibly together with the last samples:
//
//	for {
//	    n, err := src.ReadSamples(buf)
//	    // Process buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// # Integer PCM
//
// IntSource adapts the go-audio decoders, which produce integer samples
// through PCMBuffer, to Source. Samples of 8, 16, 24 and 32 bits are scaled
// by 2^(bits-1).
//
// # Format Registry
//
// The registry maps format keys to decoders. Keys are case-insensitive and a
// leading dot is ignored, so file extensions can be used directly:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	dec, err := registry.Lookup("take1.WAV")
package audio
