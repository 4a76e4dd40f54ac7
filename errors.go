// SPDX-License-Identifier: EPL-2.0

package oggstream

import "errors"

var (
	// ErrFormatMismatch indicates audio whose layout differs from the
	// encoder's stream layout.
	ErrFormatMismatch = errors.New("audio format does not match the stream")

	// ErrTruncated indicates input that ended before all Vorbis headers were
	// read.
	ErrTruncated = errors.New("stream ended before the headers were complete")
)
