// SPDX-License-Identifier: EPL-2.0

package ogg

// Ogg uses CRC-32 with polynomial 0x04C11DB7, no reflection, zero init and
// no final xor. This is not the IEEE table from hash/crc32.
var crcTable [256]uint32

func init() {
	const poly = uint32(0x04C11DB7)
	for i := range crcTable {
		crc := uint32(i) << 24
		for range 8 {
			if crc&0x80000000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		crcTable[i] = crc
	}
}

func crcUpdate(crc uint32, data []byte) uint32 {
	for _, b := range data {
		crc = (crc << 8) ^ crcTable[byte(crc>>24)^b]
	}
	return crc
}

// pageChecksum computes the checksum of a page as if its CRC field were zero.
func pageChecksum(header, body []byte) uint32 {
	var zero [4]byte
	crc := crcUpdate(0, header[:22])
	crc = crcUpdate(crc, zero[:])
	crc = crcUpdate(crc, header[26:])
	return crcUpdate(crc, body)
}
