// SPDX-License-Identifier: EPL-2.0

package codec

import "errors"

var (
	// ErrInvalidInfo is returned by StreamInfo.Validate for a channel count
	// or sample rate the codec cannot carry.
	ErrInvalidInfo = errors.New("codec: invalid stream info")

	// ErrInvalidQuality is returned for a quality outside 0..100.
	ErrInvalidQuality = errors.New("codec: quality must be between 0 and 100")

	// ErrNotHeader is returned for a packet that is not a Vorbis header.
	ErrNotHeader = errors.New("codec: not a vorbis header packet")

	// ErrHeaderOrder is returned when header packets arrive out of order or
	// synthesis is initialized before all three headers were read.
	ErrHeaderOrder = errors.New("codec: header packets out of order")

	// ErrNotAudio is returned by Synthesis for a packet that is not audio.
	ErrNotAudio = errors.New("codec: not an audio packet")
)
