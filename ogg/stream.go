// SPDX-License-Identifier: EPL-2.0

package ogg

import "encoding/binary"

// Lacing value flags kept above the 8-bit segment size.
const (
	segPacketStart = 0x100 // first segment of a packet written with PacketIn
	segEOS         = 0x200 // segment belongs to the last page of the stream
	segHole        = 0x400 // marker for data lost between pages
	segBOS         = 0x800 // first segment of the first page
	segSizeMask    = 0x0ff
)

// pageFill is the body size after which PageOut closes a page on the next
// packet boundary.
const pageFill = 4096

// Packet is one codec packet carried by a logical stream.
type Packet struct {
	Data       []byte
	BOS        bool
	EOS        bool
	GranulePos int64
	PacketNo   int64
}

// Stream is a logical bitstream identified by its serial number. On the
// decode side pages go in with PageIn and packets come out with PacketOut.
// On the encode side packets go in with PacketIn and pages come out with
// PageOut or Flush. A single Stream is used for one direction only.
type Stream struct {
	serial uint32

	body     []byte
	returned int

	lacing         []int
	granule        []int64
	lacingReturned int
	lacingPacket   int

	header [headerSize + maxSegments]byte

	bos        bool
	eos        bool
	pageNo     int64
	packetNo   int64
	granulePos int64
}

// NewStream returns a logical stream for the given serial number.
func NewStream(serial uint32) *Stream {
	return &Stream{serial: serial, pageNo: -1}
}

// Serial returns the serial number of the stream.
func (s *Stream) Serial() uint32 { return s.serial }

// EOS reports whether the end of the stream has been seen (decode) or
// submitted (encode).
func (s *Stream) EOS() bool { return s.eos }

// Reset clears all queued data while keeping the serial number.
func (s *Stream) Reset() {
	s.body = s.body[:0]
	s.returned = 0
	s.lacing = s.lacing[:0]
	s.granule = s.granule[:0]
	s.lacingReturned = 0
	s.lacingPacket = 0
	s.bos = false
	s.eos = false
	s.pageNo = -1
	s.packetNo = 0
	s.granulePos = 0
}

func (s *Stream) compact() {
	if s.returned > 0 {
		n := copy(s.body, s.body[s.returned:])
		s.body = s.body[:n]
		s.returned = 0
	}
	if s.lacingReturned > 0 {
		n := copy(s.lacing, s.lacing[s.lacingReturned:])
		copy(s.granule, s.granule[s.lacingReturned:])
		s.lacing = s.lacing[:n]
		s.granule = s.granule[:n]
		s.lacingPacket -= s.lacingReturned
		s.lacingReturned = 0
	}
}

// PageIn submits a page to the stream. Packets returned earlier by
// PacketOut become invalid.
func (s *Stream) PageIn(p *Page) error {
	if len(p.Header) < headerSize || len(p.Header) != headerSize+p.Segments() {
		return ErrInvalidPage
	}
	if p.Serial() != s.serial {
		return ErrSerialMismatch
	}
	if p.Version() != 0 {
		return ErrVersion
	}
	total := 0
	for _, v := range p.Header[headerSize:] {
		total += int(v)
	}
	if total != len(p.Body) {
		return ErrInvalidPage
	}

	s.compact()

	segs := p.Header[headerSize:]
	body := p.Body
	bos := p.IsBOS()
	pageNo := int64(p.PageNo())

	if pageNo != s.pageNo {
		// Out of sequence: drop the partial packet and, unless this is the
		// first page seen, leave a marker so PacketOut reports the gap.
		for _, v := range s.lacing[s.lacingPacket:] {
			s.body = s.body[:len(s.body)-(v&segSizeMask)]
		}
		s.lacing = s.lacing[:s.lacingPacket]
		s.granule = s.granule[:s.lacingPacket]
		if s.pageNo != -1 {
			s.lacing = append(s.lacing, segHole)
			s.granule = append(s.granule, -1)
			s.lacingPacket++
		}
	}

	seg := 0
	if p.IsContinued() {
		n := len(s.lacing)
		if n < 1 || s.lacing[n-1]&segSizeMask < 255 || s.lacing[n-1] == segHole {
			// Nothing to continue; skip the orphaned tail.
			bos = false
			for seg < len(segs) {
				v := int(segs[seg])
				seg++
				if v > len(body) {
					return ErrInvalidPage
				}
				body = body[v:]
				if v < 255 {
					break
				}
			}
		}
	}

	s.body = append(s.body, body...)

	last := -1
	for ; seg < len(segs); seg++ {
		v := int(segs[seg])
		val := v
		if bos {
			val |= segBOS
			bos = false
		}
		s.lacing = append(s.lacing, val)
		s.granule = append(s.granule, -1)
		if v < 255 {
			last = len(s.lacing) - 1
			s.lacingPacket = len(s.lacing)
		}
	}
	if last != -1 {
		s.granule[last] = p.GranulePos()
	}

	if p.IsEOS() {
		s.eos = true
		if n := len(s.lacing); n > 0 {
			s.lacing[n-1] |= segEOS
		}
	}

	s.pageNo = pageNo + 1
	return nil
}

// PacketOut returns the next complete packet, or (nil, nil) when the pages
// submitted so far hold no complete packet. A gap in the page sequence is
// reported once with ErrHole. The packet data is valid until the next PageIn.
func (s *Stream) PacketOut() (*Packet, error) {
	ptr := s.lacingReturned
	if s.lacingPacket <= ptr {
		return nil, nil
	}

	if s.lacing[ptr]&segHole != 0 {
		s.lacingReturned++
		s.packetNo++
		return nil, ErrHole
	}

	size := s.lacing[ptr] & segSizeMask
	n := size
	bos := s.lacing[ptr]&segBOS != 0
	eos := s.lacing[ptr]&segEOS != 0
	for size == 255 {
		ptr++
		size = s.lacing[ptr] & segSizeMask
		if s.lacing[ptr]&segEOS != 0 {
			eos = true
		}
		n += size
	}

	pkt := &Packet{
		Data:       s.body[s.returned : s.returned+n : s.returned+n],
		BOS:        bos,
		EOS:        eos,
		GranulePos: s.granule[ptr],
		PacketNo:   s.packetNo,
	}

	s.returned += n
	s.lacingReturned = ptr + 1
	s.packetNo++
	return pkt, nil
}

// PacketIn queues a packet for paging. The data is copied.
func (s *Stream) PacketIn(p *Packet) {
	s.compact()

	n := len(p.Data)
	vals := n/255 + 1
	start := len(s.lacing)

	s.body = append(s.body, p.Data...)
	for range vals - 1 {
		s.lacing = append(s.lacing, 255)
		s.granule = append(s.granule, s.granulePos)
	}
	s.lacing = append(s.lacing, n%255)
	s.granule = append(s.granule, p.GranulePos)
	s.granulePos = p.GranulePos
	s.lacing[start] |= segPacketStart

	s.packetNo++
	if p.EOS {
		s.eos = true
	}
}

// PageOut returns the next page once enough data is queued, or nil. The
// first page and the last page of a stream are always forced out.
func (s *Stream) PageOut() *Page {
	queued := len(s.lacing) > 0
	force := (s.eos && queued) || (queued && !s.bos)
	return s.flush(force)
}

// Flush forces all queued packets out into pages, one page per call. It
// returns nil when nothing is queued. The first page of a stream carries
// only the first packet.
func (s *Stream) Flush() *Page {
	return s.flush(true)
}

func (s *Stream) flush(force bool) *Page {
	maxVals := min(len(s.lacing), maxSegments)
	if maxVals == 0 {
		return nil
	}

	vals := 0
	granulePos := int64(-1)
	if !s.bos {
		granulePos = 0
		for vals < maxVals {
			v := s.lacing[vals] & segSizeMask
			vals++
			if v < 255 {
				break
			}
		}
	} else {
		acc := 0
		packetDone := false
		for ; vals < maxVals; vals++ {
			if acc > pageFill && packetDone {
				force = true
				break
			}
			v := s.lacing[vals] & segSizeMask
			acc += v
			packetDone = v < 255
			if packetDone {
				granulePos = s.granule[vals]
			}
		}
		if vals == maxSegments {
			force = true
		}
	}

	if !force {
		return nil
	}

	h := s.header[:headerSize+vals]
	copy(h, capturePattern)
	h[4] = 0
	h[5] = 0
	if s.lacing[0]&segPacketStart == 0 {
		h[5] |= FlagContinued
	}
	if !s.bos {
		h[5] |= FlagBOS
	}
	if s.eos && len(s.lacing) == vals {
		h[5] |= FlagEOS
	}
	s.bos = true

	if s.pageNo == -1 {
		s.pageNo = 0
	}
	binary.LittleEndian.PutUint64(h[6:14], uint64(granulePos))
	binary.LittleEndian.PutUint32(h[14:18], s.serial)
	binary.LittleEndian.PutUint32(h[18:22], uint32(s.pageNo))
	s.pageNo++
	h[26] = byte(vals)

	size := 0
	for i := range vals {
		v := s.lacing[i] & segSizeMask
		h[headerSize+i] = byte(v)
		size += v
	}

	page := &Page{
		Header: h,
		Body:   s.body[s.returned : s.returned+size : s.returned+size],
	}

	n := copy(s.lacing, s.lacing[vals:])
	copy(s.granule, s.granule[vals:])
	s.lacing = s.lacing[:n]
	s.granule = s.granule[:n]
	s.returned += size

	page.setChecksum()
	return page
}
