// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files.
//
// Decoding is done by github.com/go-audio/wav and supports integer PCM at
// 16, 24 and 32 bits with any channel count. Samples come out of the
// returned audio.Source as float32 values in [-1.0, 1.0).
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// # Writing
//
// Writer streams 16-bit PCM as it arrives, which suits decoder callbacks
// that deliver audio in small batches. The destination must be seekable
// because the chunk sizes are patched on Close:
//
//	w, _ := wav.NewWriter(file, 44100, 2)
//	w.Write(samples) // interleaved
//	w.Close()
//
// WriteWAV16 writes a whole buffer in one go to any io.Writer.
package wav
