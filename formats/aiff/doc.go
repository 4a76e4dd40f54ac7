// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files through
// github.com/go-audio/aiff.
//
// Signed big-endian PCM at 8, 16, 24 and 32 bits is supported. Samples are
// scaled to float32 in [-1.0, 1.0). AIFF-C compressed variants are not.
//
// The go-audio decoder seeks between chunks, so readers without Seek are
// buffered in memory first.
package aiff
