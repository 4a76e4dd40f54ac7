// SPDX-License-Identifier: EPL-2.0

package ogg

import "bytes"

// Sync accumulates raw bytes of a physical bitstream and cuts them into
// pages. Bytes that do not form a valid page are skipped.
//
// The zero value is ready to use.
type Sync struct {
	data     []byte
	returned int
	unsynced bool
}

// Write appends p to the buffered data. The bytes are copied.
func (s *Sync) Write(p []byte) {
	if s.returned > 0 {
		n := copy(s.data, s.data[s.returned:])
		s.data = s.data[:n]
		s.returned = 0
	}
	s.data = append(s.data, p...)
}

// Buffered returns the number of bytes not yet returned as pages or skipped.
func (s *Sync) Buffered() int { return len(s.data) - s.returned }

// Reset drops all buffered data.
func (s *Sync) Reset() {
	s.data = s.data[:0]
	s.returned = 0
	s.unsynced = false
}

// PageOut returns the next complete page.
//
// It returns (nil, nil) when more data is needed. When bytes are skipped to
// reach the next page it returns ErrLostSync once; calling again continues
// the scan. The returned page is valid until the next Write or Reset.
func (s *Sync) PageOut() (*Page, error) {
	for {
		page, skipped := s.seek()
		if page != nil {
			s.unsynced = false
			return page, nil
		}
		if skipped == 0 {
			return nil, nil
		}
		if !s.unsynced {
			s.unsynced = true
			return nil, ErrLostSync
		}
	}
}

// seek tries to cut a page at the read position. It returns the page, or the
// number of bytes skipped, or neither when more data is needed.
func (s *Sync) seek() (*Page, int) {
	buf := s.data[s.returned:]
	if len(buf) < headerSize {
		return nil, 0
	}
	if string(buf[:4]) != capturePattern {
		return nil, s.skip(buf)
	}

	hlen := headerSize + int(buf[26])
	if len(buf) < hlen {
		return nil, 0
	}
	blen := 0
	for _, v := range buf[headerSize:hlen] {
		blen += int(v)
	}
	if len(buf) < hlen+blen {
		return nil, 0
	}

	page := &Page{
		Header: buf[:hlen:hlen],
		Body:   buf[hlen : hlen+blen : hlen+blen],
	}
	if !page.verify() {
		return nil, s.skip(buf)
	}

	s.returned += hlen + blen
	return page, 0
}

// skip advances past buf[0] to the next possible capture pattern.
func (s *Sync) skip(buf []byte) int {
	n := len(buf)
	if next := bytes.IndexByte(buf[1:], capturePattern[0]); next >= 0 {
		n = next + 1
	}
	s.returned += n
	return n
}
