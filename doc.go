// SPDX-License-Identifier: EPL-2.0

// Package oggstream converts between interleaved 16-bit PCM and Ogg Vorbis
// byte streams, in either direction, in chunks of any size.
//
// The work is done by the subpackages:
//   - decoder: push bytes in, receive PCM through a callback
//   - encoder: push PCM in, receive Ogg pages through a callback
//   - ogg: page framing and packet reassembly
//   - codec: the contract for the Vorbis engines
//   - pcm: float to int16 conversion
//
// This package wraps them for whole-buffer use.
//
// # Decoding
//
//	f, _ := os.Open("speech.ogg")
//	samples, info, err := oggstream.DecodeToPCM16(f, 4096)
//
// For streaming input use the decoder package directly:
//
//	d := decoder.New(func(samples []int16, frames int) {
//	    // play or store the audio
//	})
//	for chunk := range network {
//	    if err := d.WriteData(chunk); err != nil {
//	        return err
//	    }
//	}
//	d.Finalize()
//
// # Encoding
//
// The encoder needs a codec.AnalysisEngine; none is bundled.
//
//	err := oggstream.EncodePCM16(out, codec.StreamInfo{SampleRate: 48000, Channels: 2}, 60, engine, samples)
//
// EncodeSource feeds any audio.Source, such as a WAV or MP3 file opened
// through DefaultRegistry, to an encoder.
package oggstream
