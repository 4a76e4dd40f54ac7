// SPDX-License-Identifier: EPL-2.0

package ogg

import "encoding/binary"

// Page header flags.
const (
	// FlagContinued marks a page whose first segment continues a packet
	// started on a previous page.
	FlagContinued = 0x01

	// FlagBOS marks the first page of a logical bitstream.
	FlagBOS = 0x02

	// FlagEOS marks the last page of a logical bitstream.
	FlagEOS = 0x04
)

const (
	// headerSize is the fixed part of a page header, before the segment table.
	headerSize = 27

	// maxSegments is the largest segment table a page can carry.
	maxSegments = 255

	capturePattern = "OggS"
)

// Page is one physical Ogg page split into its header (including the
// segment table) and its body.
//
// Pages returned by Sync and Stream alias their internal buffers and are only
// valid until the next call on the object that produced them. Use Bytes to
// keep a copy.
type Page struct {
	Header []byte
	Body   []byte
}

// Version returns the stream structure version (always 0 for valid pages).
func (p *Page) Version() byte { return p.Header[4] }

// IsContinued reports whether the page starts with the tail of a packet.
func (p *Page) IsContinued() bool { return p.Header[5]&FlagContinued != 0 }

// IsBOS reports whether the page begins a logical bitstream.
func (p *Page) IsBOS() bool { return p.Header[5]&FlagBOS != 0 }

// IsEOS reports whether the page ends a logical bitstream.
func (p *Page) IsEOS() bool { return p.Header[5]&FlagEOS != 0 }

// GranulePos returns the codec-defined position at the end of the last
// packet completed on this page, or -1 when no packet completes here.
func (p *Page) GranulePos() int64 {
	return int64(binary.LittleEndian.Uint64(p.Header[6:14]))
}

// Serial returns the serial number of the logical bitstream.
func (p *Page) Serial() uint32 {
	return binary.LittleEndian.Uint32(p.Header[14:18])
}

// PageNo returns the page sequence number.
func (p *Page) PageNo() uint32 {
	return binary.LittleEndian.Uint32(p.Header[18:22])
}

// Checksum returns the CRC stored in the header.
func (p *Page) Checksum() uint32 {
	return binary.LittleEndian.Uint32(p.Header[22:26])
}

// Segments returns the number of lacing values in the segment table.
func (p *Page) Segments() int { return int(p.Header[26]) }

// Packets returns the number of packets that end on this page.
func (p *Page) Packets() int {
	n := 0
	for _, v := range p.Header[headerSize:] {
		if v < 255 {
			n++
		}
	}
	return n
}

// Len returns the encoded size of the page.
func (p *Page) Len() int { return len(p.Header) + len(p.Body) }

// Bytes returns a copy of the encoded page.
func (p *Page) Bytes() []byte {
	out := make([]byte, 0, p.Len())
	out = append(out, p.Header...)
	return append(out, p.Body...)
}

func (p *Page) verify() bool {
	return pageChecksum(p.Header, p.Body) == p.Checksum()
}

func (p *Page) setChecksum() {
	binary.LittleEndian.PutUint32(p.Header[22:26], pageChecksum(p.Header, p.Body))
}
