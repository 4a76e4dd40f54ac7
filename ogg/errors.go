// SPDX-License-Identifier: EPL-2.0

package ogg

import "errors"

var (
	// ErrLostSync is returned by Sync.PageOut when bytes had to be skipped to
	// find the next page, either because the capture pattern was missing or
	// because a page failed its checksum. It is reported once per resync.
	ErrLostSync = errors.New("ogg: lost sync, skipped bytes")

	// ErrHole is returned by Stream.PacketOut when page sequence numbers show
	// that data is missing between two pages.
	ErrHole = errors.New("ogg: hole in packet data")

	// ErrSerialMismatch is returned by Stream.PageIn for a page that belongs
	// to another logical stream.
	ErrSerialMismatch = errors.New("ogg: page serial does not match stream")

	// ErrVersion is returned by Stream.PageIn for a page with a non-zero
	// stream structure version.
	ErrVersion = errors.New("ogg: unsupported stream structure version")

	// ErrInvalidPage indicates a page header that is truncated or malformed.
	ErrInvalidPage = errors.New("ogg: invalid page structure")
)
