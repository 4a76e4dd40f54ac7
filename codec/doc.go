// SPDX-License-Identifier: EPL-2.0

// Package codec defines the contract between the streaming decoder and
// encoder and the Vorbis engine that performs the actual transforms.
//
// The engine is an external collaborator: header validation, synthesis,
// analysis and bitrate management live behind the Synthesizer and Analyzer
// interfaces. The formats/vorbis package provides a synthesis engine backed
// by github.com/jfreymuth/vorbis.
//
// The package also carries the small amount of Vorbis knowledge shared by
// every engine: header packet types, stream info validation, and the mapping
// of the caller-facing integer quality onto the engine quality range:
//
//	q := quality/100 * (MaxQuality - MinQuality) + MinQuality
package codec
