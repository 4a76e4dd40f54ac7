// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownFormat       = errors.New("unknown audio format")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
)

// UnknownFormatError reports a format key with no registered decoder.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	if e.Format == "" {
		return ErrUnknownFormat.Error() + ": no file extension"
	}
	return fmt.Sprintf("%s: %q", ErrUnknownFormat, e.Format)
}

func (e *UnknownFormatError) Unwrap() error { return ErrUnknownFormat }
