// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"

	"github.com/jfreymuth/vorbis"

	"github.com/ik5/oggstream/codec"
	"github.com/ik5/oggstream/ogg"
)

// packetDecoder is the part of vorbis.Decoder the synthesizer uses.
type packetDecoder interface {
	ReadHeader(header []byte) error
	HeadersRead() bool
	SampleRate() int
	Channels() int
	Decode(packet []byte) ([]float32, error)
	Clear()
}

// Engine is a synthesis engine backed by github.com/jfreymuth/vorbis.
type Engine struct{}

var _ codec.SynthesisEngine = Engine{}

func (Engine) NewSynthesizer() codec.Synthesizer {
	return newSynthesizer(&vorbis.Decoder{})
}

type synthesizer struct {
	dec packetDecoder

	headers int
	info    codec.StreamInfo
	vendor  string
	ready   bool

	// block holds the interleaved output of the last Synthesis call.
	block   []float32
	granule int64
	eos     bool
	pending [][]float32

	// emitted counts frames handed to pending since the start of the
	// stream, or -1 when a gap has made the position unknown.
	emitted int64
}

func newSynthesizer(dec packetDecoder) *synthesizer {
	return &synthesizer{dec: dec}
}

func (s *synthesizer) HeaderIn(p *ogg.Packet) error {
	if s.headers >= len(codec.HeaderOrder) {
		return codec.ErrHeaderOrder
	}
	kind, err := codec.HeaderKind(p.Data)
	if err != nil {
		return err
	}
	if kind != codec.HeaderOrder[s.headers] {
		return fmt.Errorf("%w: expected type %d, got %d", codec.ErrHeaderOrder, codec.HeaderOrder[s.headers], kind)
	}
	if kind == codec.HeaderIdentification && !p.BOS {
		return fmt.Errorf("%w: identification header is not at the start of the stream", codec.ErrNotHeader)
	}

	if err := s.dec.ReadHeader(p.Data); err != nil {
		return fmt.Errorf("%w: %w", codec.ErrNotHeader, err)
	}

	switch kind {
	case codec.HeaderIdentification:
		s.info = codec.StreamInfo{
			SampleRate: s.dec.SampleRate(),
			Channels:   s.dec.Channels(),
		}
	case codec.HeaderComment:
		vendor, err := codec.CommentVendor(p.Data)
		if err != nil {
			return err
		}
		s.vendor = vendor
	}

	s.headers++
	return nil
}

func (s *synthesizer) Info() codec.StreamInfo { return s.info }

func (s *synthesizer) Vendor() string { return s.vendor }

func (s *synthesizer) Init() error {
	if s.headers != len(codec.HeaderOrder) || !s.dec.HeadersRead() {
		return codec.ErrHeaderOrder
	}
	if err := s.info.Validate(); err != nil {
		return err
	}
	s.pending = make([][]float32, s.info.Channels)
	s.ready = true
	return nil
}

func (s *synthesizer) Synthesis(p *ogg.Packet) error {
	if !s.ready {
		return codec.ErrHeaderOrder
	}
	if len(p.Data) == 0 || p.Data[0]&1 != 0 {
		return codec.ErrNotAudio
	}

	out, err := s.dec.Decode(p.Data)
	if err != nil {
		s.block = nil
		return err
	}
	s.block = out
	s.granule = p.GranulePos
	s.eos = p.EOS
	return nil
}

func (s *synthesizer) BlockIn() error {
	if !s.ready {
		return codec.ErrHeaderOrder
	}
	channels := len(s.pending)
	if len(s.block)%channels != 0 {
		return fmt.Errorf("vorbis: block of %d samples for %d channels", len(s.block), channels)
	}

	// The last packet may carry padding past the final granule position.
	frames := int64(len(s.block) / channels)
	if s.eos && s.granule >= 0 && s.emitted >= 0 {
		frames = max(0, min(frames, s.granule-s.emitted))
	}
	block := s.block[:frames*int64(channels)]
	for ch := range s.pending {
		for i := ch; i < len(block); i += channels {
			s.pending[ch] = append(s.pending[ch], block[i])
		}
	}

	switch {
	case s.emitted >= 0:
		s.emitted += frames
	case s.granule >= 0:
		s.emitted = s.granule
	}
	s.block = nil
	return nil
}

func (s *synthesizer) PCMOut() [][]float32 {
	if len(s.pending) == 0 || len(s.pending[0]) == 0 {
		return nil
	}
	return s.pending
}

func (s *synthesizer) Read(n int) error {
	if len(s.pending) == 0 || n < 0 || n > len(s.pending[0]) {
		return fmt.Errorf("vorbis: cannot consume %d frames", n)
	}
	for ch, samples := range s.pending {
		m := copy(samples, samples[n:])
		s.pending[ch] = samples[:m]
	}
	return nil
}

func (s *synthesizer) Reset() {
	s.dec.Clear()
	s.block = nil
	s.emitted = -1
	for ch := range s.pending {
		s.pending[ch] = s.pending[ch][:0]
	}
}

func (s *synthesizer) Close() {
	s.ready = false
	s.block = nil
	s.pending = nil
}
