// SPDX-License-Identifier: EPL-2.0

package codectest

import (
	"fmt"

	"github.com/ik5/oggstream/codec"
	"github.com/ik5/oggstream/ogg"
)

// Analyzer is the analysis side of Engine. It cuts the submitted PCM into
// fixed-size blocks, one audio packet each.
type Analyzer struct {
	info      codec.StreamInfo
	quality   float32
	blockSize int

	buffer  [][]float32
	pending [][]float32
	eof     bool

	block    [][]float32
	last     bool
	analyzed *ogg.Packet
	queue    []*ogg.Packet

	granule  int64
	packetNo int64
	eosOut   bool
	closed   bool
}

var _ codec.Analyzer = (*Analyzer)(nil)

// Closed reports whether Close was called.
func (a *Analyzer) Closed() bool { return a.closed }

// Quality returns the engine quality the analyzer was created with.
func (a *Analyzer) Quality() float32 { return a.quality }

func (a *Analyzer) HeaderOut() (ident, comment, setup *ogg.Packet, err error) {
	bitrate := int32(64000 + a.quality*192000)
	ident = &ogg.Packet{Data: IdentHeader(a.info, bitrate), BOS: true, PacketNo: 0}
	comment = &ogg.Packet{Data: CommentHeader(Vendor), PacketNo: 1}
	setup = &ogg.Packet{Data: SetupHeader(), PacketNo: 2}
	a.packetNo = 3
	return ident, comment, setup, nil
}

func (a *Analyzer) Buffer(frames int) [][]float32 {
	for ch := range a.buffer {
		if cap(a.buffer[ch]) < frames {
			a.buffer[ch] = make([]float32, frames)
		}
		a.buffer[ch] = a.buffer[ch][:frames]
	}
	return a.buffer
}

func (a *Analyzer) Wrote(frames int) error {
	if a.eof {
		return fmt.Errorf("codectest: write after end of input")
	}
	if frames == 0 {
		a.eof = true
		return nil
	}
	for ch := range a.pending {
		if frames > len(a.buffer[ch]) {
			return fmt.Errorf("codectest: wrote %d frames into a buffer of %d", frames, len(a.buffer[ch]))
		}
		a.pending[ch] = append(a.pending[ch], a.buffer[ch][:frames]...)
	}
	return nil
}

func (a *Analyzer) BlockOut() bool {
	if a.eosOut || a.block != nil {
		return false
	}

	avail := len(a.pending[0])
	switch {
	case avail >= a.blockSize && !(a.eof && avail == a.blockSize):
		a.take(a.blockSize, false)
	case a.eof:
		// Whatever is left, possibly nothing, closes the stream.
		a.take(avail, true)
	default:
		return false
	}
	return true
}

func (a *Analyzer) take(frames int, last bool) {
	a.block = make([][]float32, len(a.pending))
	for ch := range a.pending {
		a.block[ch] = append([]float32(nil), a.pending[ch][:frames]...)
		a.pending[ch] = append(a.pending[ch][:0], a.pending[ch][frames:]...)
	}
	a.last = last
}

func (a *Analyzer) Analysis() error {
	if a.block == nil {
		return fmt.Errorf("codectest: no block to analyze")
	}
	a.granule += int64(len(a.block[0]))
	a.analyzed = &ogg.Packet{
		Data:       AudioPacket(a.block),
		EOS:        a.last,
		GranulePos: a.granule,
		PacketNo:   a.packetNo,
	}
	a.packetNo++
	a.block = nil
	return nil
}

func (a *Analyzer) BitrateAddBlock() error {
	if a.analyzed == nil {
		return fmt.Errorf("codectest: no analyzed block")
	}
	a.queue = append(a.queue, a.analyzed)
	a.eosOut = a.analyzed.EOS
	a.analyzed = nil
	return nil
}

func (a *Analyzer) FlushPacket() (*ogg.Packet, bool) {
	if len(a.queue) == 0 {
		return nil, false
	}
	p := a.queue[0]
	a.queue = a.queue[1:]
	return p, true
}

func (a *Analyzer) Close() {
	a.closed = true
	a.pending = nil
	a.queue = nil
}
