// SPDX-License-Identifier: EPL-2.0

package encoder

import "errors"

var (
	// ErrConstruction is returned by New when the stream parameters are
	// rejected or the analysis engine cannot be set up.
	ErrConstruction = errors.New("encoder: cannot construct encoder")

	// ErrNotInitialized is returned by WriteFrames and Finalize before Init.
	ErrNotInitialized = errors.New("encoder: headers not written, call Init first")

	// ErrFinalized is returned by every call after Finalize.
	ErrFinalized = errors.New("encoder: already finalized")

	// ErrShortBuffer is returned when a sample slice holds fewer values than
	// frames*channels.
	ErrShortBuffer = errors.New("encoder: sample buffer shorter than frame count")
)
