// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always renders two channels of 16-bit PCM, so every source returned
// by Decoder is stereo regardless of the channel mode of the file. Samples
// are scaled to float32 in [-1.0, 1.0).
package mp3
