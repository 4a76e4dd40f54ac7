// SPDX-License-Identifier: EPL-2.0

package codectest

import (
	"io"
	"math"
)

// Source generates float audio for tests. It satisfies audio.Source without
// importing it, so the audio package tests can use it too.
type Source struct {
	sampleRate int
	channels   int
	frames     int
	generated  int
	waveform   func(frame, channel int) float32

	closed bool
}

// NewSource returns a source producing frames frames of waveform.
func NewSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *Source {
	return &Source{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

// NewSilentSource returns a source of zeros.
func NewSilentSource(sampleRate, channels, frames int) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

// NewSineSource returns a source of a sine wave at the given frequency, with
// a small phase offset per channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *Source {
	return NewSource(sampleRate, channels, frames, func(frame, ch int) float32 {
		return SineSample(sampleRate, frequency, frame, ch)
	})
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *Source) Closed() bool { return s.closed }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.generated >= s.frames {
		return 0, io.EOF
	}

	frames := min(len(dst)/s.channels, s.frames-s.generated)
	for i := range frames {
		for ch := range s.channels {
			dst[i*s.channels+ch] = s.waveform(s.generated+i, ch)
		}
	}
	s.generated += frames

	n := frames * s.channels
	if s.generated >= s.frames {
		return n, io.EOF
	}
	return n, nil
}

// SineSample returns one sample of a 0.8 amplitude sine wave.
func SineSample(sampleRate int, frequency float64, frame, channel int) float32 {
	t := float64(frame) / float64(sampleRate)
	return float32(0.8 * math.Sin(2*math.Pi*frequency*t+float64(channel)*0.5))
}

// Sine returns interleaved int16 samples of a sine wave.
func Sine(sampleRate, channels, frames int, frequency float64) []int16 {
	out := make([]int16, frames*channels)
	for i := range frames {
		for ch := range channels {
			out[i*channels+ch] = int16(SineSample(sampleRate, frequency, i, ch) * 32767)
		}
	}
	return out
}

// Silence returns interleaved zero samples.
func Silence(channels, frames int) []int16 {
	return make([]int16, frames*channels)
}
