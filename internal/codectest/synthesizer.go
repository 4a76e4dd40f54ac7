// SPDX-License-Identifier: EPL-2.0

package codectest

import (
	"fmt"

	"github.com/ik5/oggstream/codec"
	"github.com/ik5/oggstream/ogg"
)

// Synthesizer is the synthesis side of Engine.
type Synthesizer struct {
	headers int
	info    codec.StreamInfo
	vendor  string
	ready   bool

	block   [][]float32
	pending [][]float32

	// Resets counts Reset calls.
	Resets int
	closed bool
}

var _ codec.Synthesizer = (*Synthesizer)(nil)

// Closed reports whether Close was called.
func (s *Synthesizer) Closed() bool { return s.closed }

func (s *Synthesizer) HeaderIn(p *ogg.Packet) error {
	if s.headers >= len(codec.HeaderOrder) {
		return codec.ErrHeaderOrder
	}
	kind, err := codec.HeaderKind(p.Data)
	if err != nil {
		return err
	}
	if kind != codec.HeaderOrder[s.headers] {
		return fmt.Errorf("%w: got type %d", codec.ErrHeaderOrder, kind)
	}

	switch kind {
	case codec.HeaderIdentification:
		if !p.BOS {
			return fmt.Errorf("%w: identification header must begin the stream", codec.ErrNotHeader)
		}
		info, err := parseIdent(p.Data)
		if err != nil {
			return fmt.Errorf("%w: %w", codec.ErrNotHeader, err)
		}
		s.info = info
	case codec.HeaderComment:
		vendor, err := codec.CommentVendor(p.Data)
		if err != nil {
			return err
		}
		s.vendor = vendor
	case codec.HeaderSetup:
		if string(p.Data[len(codec.HeaderPrefix(kind)):]) != setupPayload {
			return fmt.Errorf("%w: unknown setup", codec.ErrNotHeader)
		}
	}

	s.headers++
	return nil
}

func (s *Synthesizer) Info() codec.StreamInfo { return s.info }

func (s *Synthesizer) Vendor() string { return s.vendor }

func (s *Synthesizer) Init() error {
	if s.headers != len(codec.HeaderOrder) {
		return codec.ErrHeaderOrder
	}
	if err := s.info.Validate(); err != nil {
		return err
	}
	s.pending = make([][]float32, s.info.Channels)
	s.ready = true
	return nil
}

func (s *Synthesizer) Synthesis(p *ogg.Packet) error {
	if !s.ready {
		return codec.ErrHeaderOrder
	}
	block, err := parseAudio(p.Data, s.info.Channels)
	if err != nil {
		return err
	}
	s.block = block
	return nil
}

func (s *Synthesizer) BlockIn() error {
	if s.block == nil {
		return fmt.Errorf("codectest: no block")
	}
	for ch := range s.pending {
		s.pending[ch] = append(s.pending[ch], s.block[ch]...)
	}
	s.block = nil
	return nil
}

func (s *Synthesizer) PCMOut() [][]float32 {
	if len(s.pending) == 0 || len(s.pending[0]) == 0 {
		return nil
	}
	return s.pending
}

func (s *Synthesizer) Read(n int) error {
	if len(s.pending) == 0 || n > len(s.pending[0]) {
		return fmt.Errorf("codectest: read %d frames past pending output", n)
	}
	for ch := range s.pending {
		s.pending[ch] = s.pending[ch][n:]
	}
	return nil
}

func (s *Synthesizer) Reset() {
	s.Resets++
	s.block = nil
	for ch := range s.pending {
		s.pending[ch] = nil
	}
}

func (s *Synthesizer) Close() {
	s.closed = true
	s.ready = false
	s.pending = nil
}
