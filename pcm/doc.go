// SPDX-License-Identifier: EPL-2.0

// Package pcm converts between per-channel float samples and interleaved
// signed 16-bit PCM.
//
// Float to int16 conversion scales by 32767, rounds half up and clips:
//
//	floor(x*32767 + 0.5) clamped to [-32768, 32767]
//
// so 1.0 maps to 32767, -1.0 to -32767 and anything below about
// -1.0000153 to -32768. Values never wrap around.
//
// A Converter writes into a fixed 4096-sample scratch buffer, so a single
// call never produces more than 4096/channels frames.
package pcm
