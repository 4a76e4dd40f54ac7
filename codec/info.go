// SPDX-License-Identifier: EPL-2.0

package codec

import "fmt"

// MaxChannels is the largest channel count a Vorbis stream can declare.
const MaxChannels = 255

// Engine quality range targeted by the integer quality parameter.
const (
	MinQuality float32 = -0.1
	MaxQuality float32 = 1.0
)

// StreamInfo describes the PCM layout of a stream.
type StreamInfo struct {
	SampleRate int
	Channels   int
}

// Validate checks that the info describes a usable stream.
func (i StreamInfo) Validate() error {
	if i.Channels < 1 || i.Channels > MaxChannels {
		return fmt.Errorf("%w: channels must be between 1 and %d, got %d", ErrInvalidInfo, MaxChannels, i.Channels)
	}
	if i.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidInfo, i.SampleRate)
	}
	return nil
}

// MapQuality maps an integer quality in [0, 100] linearly onto the engine
// range [MinQuality, MaxQuality].
func MapQuality(quality int) (float32, error) {
	if quality < 0 || quality > 100 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidQuality, quality)
	}
	// Explicit conversion keeps the float32 rounding of each step.
	scaled := float32(float32(quality) / 100 * (MaxQuality - MinQuality))
	return scaled + MinQuality, nil
}
