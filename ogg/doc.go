// SPDX-License-Identifier: EPL-2.0

// Package ogg implements the Ogg container framing (RFC 3533) needed to carry
// a single logical Vorbis stream over a byte stream of unknown length.
//
// Two types cover the two directions of the framing:
//
//   - Sync takes raw bytes in whatever chunk sizes they arrive and cuts them
//     into checksummed pages, skipping garbage and corrupt pages.
//   - Stream is one logical bitstream. On the decode side it welds pages
//     into packets, tolerating packets that span pages and reporting holes
//     in the page sequence. On the encode side it laces packets into pages.
//
// # Page Structure
//
//	Bytes 0-3:   "OggS" capture pattern
//	Byte 4:      Stream structure version (always 0)
//	Byte 5:      Header type flags (continued, BOS, EOS)
//	Bytes 6-13:  Granule position
//	Bytes 14-17: Bitstream serial number
//	Bytes 18-21: Page sequence number
//	Bytes 22-25: CRC checksum
//	Byte 26:     Number of segments
//	Bytes 27+:   Segment table, then the page body
//
// # Decoding
//
//	var sync ogg.Sync
//	sync.Write(chunk)
//	for {
//	    page, err := sync.PageOut()
//	    if errors.Is(err, ogg.ErrLostSync) {
//	        continue
//	    }
//	    if page == nil {
//	        break // need more data
//	    }
//	    stream.PageIn(page)
//	    for {
//	        pkt, err := stream.PacketOut()
//	        ...
//	    }
//	}
//
// # Encoding
//
//	stream := ogg.NewStream(serial)
//	stream.PacketIn(&ogg.Packet{Data: data, GranulePos: pos})
//	for page := stream.PageOut(); page != nil; page = stream.PageOut() {
//	    w.Write(page.Header)
//	    w.Write(page.Body)
//	}
//
// Pages and packets returned by this package alias internal buffers and are
// valid only until the next call on the Sync or Stream that produced them.
package ogg
