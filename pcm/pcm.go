// SPDX-License-Identifier: EPL-2.0

package pcm

import "math"

// ScratchSize is the number of int16 samples a Converter holds. Every batch
// handed to a frame callback fits in it.
const ScratchSize = 4096

const (
	scaleOut = 32767
	scaleIn  = 1.0 / 32768
)

// RoundToInt16 scales x by 32767, rounds half up and clips to the int16
// range. NaN maps to 0.
func RoundToInt16(x float32) int16 {
	// The conversion pins the product to float32 before the add.
	v := math.Floor(float64(float32(x*scaleOut) + 0.5))
	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

// Converter interleaves per-channel float PCM into a fixed int16 scratch
// buffer.
type Converter struct {
	channels int
	scratch  [ScratchSize]int16
}

// NewConverter returns a converter for the given channel count, which must be
// between 1 and ScratchSize.
func NewConverter(channels int) *Converter {
	return &Converter{channels: channels}
}

// Channels returns the channel count the converter was built for.
func (c *Converter) Channels() int { return c.channels }

// MaxFrames returns the largest number of frames one Interleave call
// converts.
func (c *Converter) MaxFrames() int { return ScratchSize / c.channels }

// Interleave converts up to frames samples from each channel of src and
// returns the interleaved result along with the number of frames converted.
// The returned slice aliases the scratch buffer and is valid until the next
// call.
func (c *Converter) Interleave(src [][]float32, frames int) ([]int16, int) {
	frames = min(frames, c.MaxFrames())
	out := c.scratch[:frames*c.channels]
	for ch, samples := range src[:c.channels] {
		for i, x := range samples[:frames] {
			out[i*c.channels+ch] = RoundToInt16(x)
		}
	}
	return out, frames
}

// Deinterleave splits frames of interleaved int16 samples into dst, one slice
// per channel, scaled to [-1, 1).
func Deinterleave(dst [][]float32, src []int16, frames int) {
	channels := len(dst)
	for ch, out := range dst {
		for i := range frames {
			out[i] = float32(src[i*channels+ch]) * scaleIn
		}
	}
}
