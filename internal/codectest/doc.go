// SPDX-License-Identifier: EPL-2.0

// Package codectest provides a deterministic codec engine and signal
// generators for tests.
//
// The engine writes headers laid out like real Vorbis headers, but its audio
// packets hold the raw float samples. Encoding with it and decoding with it
// reproduces the input, which makes encode and decode round trips exact up
// to the int16 conversion.
package codectest
