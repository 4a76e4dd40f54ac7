// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input is not a FORM/AIFF file.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedFormat indicates an AIFF layout the decoder cannot read.
	ErrUnsupportedFormat = errors.New("unsupported AIFF format")
)
