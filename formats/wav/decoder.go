// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/oggstream/audio"
)

// formatPCM is the WAVE_FORMAT_PCM tag.
const formatPCM = 1

// Decoder reads integer PCM WAV files of 16, 24 or 32 bits.
type Decoder struct{}

// Decode parses the RIFF headers of r and returns a source positioned at the
// first sample. Readers that cannot seek are buffered in memory.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read wav: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	// 8-bit WAV samples are unsigned and go-audio passes them through as is.
	if dec.BitDepth == 8 {
		return nil, fmt.Errorf("%w: 8-bit samples", ErrUnsupportedFormat)
	}

	src, err := audio.NewIntSource(dec, dec.Format(), int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	return src, nil
}
