// SPDX-License-Identifier: EPL-2.0

package decoder

import "errors"

var (
	// ErrInvalidContainer is returned when a full input chunk holds no Ogg
	// page, or the first page cannot start a logical stream.
	ErrInvalidContainer = errors.New("decoder: input does not appear to be an Ogg bitstream")

	// ErrCorruptHeader is returned when one of the three Vorbis header
	// packets is missing, damaged or rejected by the codec engine.
	ErrCorruptHeader = errors.New("decoder: corrupt vorbis header")

	// ErrCorruptPage is reported through the diagnostics hook when data was
	// skipped or lost after the headers. Decoding continues.
	ErrCorruptPage = errors.New("decoder: corrupt or missing data in bitstream")

	// ErrUnsupportedStream is reported through the diagnostics hook for pages
	// of another logical stream, such as the next link of a chained file.
	ErrUnsupportedStream = errors.New("decoder: page belongs to another logical stream")

	// ErrFinalized is returned by WriteData after Finalize or Close.
	ErrFinalized = errors.New("decoder: already finalized")

	errNeedMoreData = errors.New("decoder: need more data")
)
