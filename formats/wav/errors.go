// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile        = errors.New("not a WAV file")
	ErrUnsupportedFormat = errors.New("unsupported WAV format")
	ErrInvalidChannels   = errors.New("invalid channel count")
)
