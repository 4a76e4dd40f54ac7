// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"encoding/binary"
	"fmt"
)

// Vorbis header packet types, in the order they must appear.
const (
	HeaderIdentification byte = 1
	HeaderComment        byte = 3
	HeaderSetup          byte = 5
)

// HeaderOrder lists the header types in stream order.
var HeaderOrder = [3]byte{HeaderIdentification, HeaderComment, HeaderSetup}

const headerMagic = "vorbis"

// HeaderKind returns the type of a Vorbis header packet.
func HeaderKind(data []byte) (byte, error) {
	if len(data) < 1+len(headerMagic) || string(data[1:1+len(headerMagic)]) != headerMagic {
		return 0, ErrNotHeader
	}
	switch kind := data[0]; kind {
	case HeaderIdentification, HeaderComment, HeaderSetup:
		return kind, nil
	default:
		return 0, fmt.Errorf("%w: unknown type %d", ErrNotHeader, kind)
	}
}

// HeaderPrefix returns the common prefix of a header packet of the given type.
func HeaderPrefix(kind byte) []byte {
	return append([]byte{kind}, headerMagic...)
}

// CommentVendor extracts the vendor string from a comment header packet.
func CommentVendor(data []byte) (string, error) {
	kind, err := HeaderKind(data)
	if err != nil {
		return "", err
	}
	if kind != HeaderComment {
		return "", fmt.Errorf("%w: type %d is not a comment header", ErrNotHeader, kind)
	}

	rest := data[1+len(headerMagic):]
	if len(rest) < 4 {
		return "", fmt.Errorf("%w: truncated comment header", ErrNotHeader)
	}
	n := binary.LittleEndian.Uint32(rest)
	if uint64(n) > uint64(len(rest)-4) {
		return "", fmt.Errorf("%w: vendor length %d exceeds packet", ErrNotHeader, n)
	}
	return string(rest[4 : 4+n]), nil
}
