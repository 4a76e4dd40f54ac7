// SPDX-License-Identifier: EPL-2.0

package codec

import "github.com/ik5/oggstream/ogg"

// SynthesisEngine creates per-stream synthesizers.
type SynthesisEngine interface {
	NewSynthesizer() Synthesizer
}

// Synthesizer turns Vorbis packets into per-channel float PCM.
//
// Headers are fed with HeaderIn in stream order. Once all three are in, Init
// prepares the synthesis state. Each audio packet is decoded into a working
// block with Synthesis and merged into the output with BlockIn. PCMOut
// exposes the pending samples and Read consumes them.
type Synthesizer interface {
	// HeaderIn validates and absorbs the next header packet.
	HeaderIn(p *ogg.Packet) error

	// Info returns the stream parameters read from the identification
	// header, or the zero value before it has been read.
	Info() StreamInfo

	// Vendor returns the vendor string from the comment header.
	Vendor() string

	// Init prepares synthesis after the setup header.
	Init() error

	// Synthesis decodes an audio packet into the working block.
	Synthesis(p *ogg.Packet) error

	// BlockIn merges the working block into the pending output.
	BlockIn() error

	// PCMOut returns one slice per channel holding the pending samples.
	// The slices are valid until the next call on the Synthesizer.
	PCMOut() [][]float32

	// Read marks n samples per channel as consumed.
	Read(n int) error

	// Reset drops overlap and pending audio after a gap in the packet
	// sequence or at the end of a logical stream. Stream info is kept.
	Reset()

	// Close releases the synthesis state.
	Close()
}

// AnalysisEngine creates per-stream analyzers.
type AnalysisEngine interface {
	// NewAnalyzer sets up variable bitrate analysis for the stream at the
	// given engine quality. It fails when the engine rejects the settings.
	NewAnalyzer(info StreamInfo, quality float32) (Analyzer, error)
}

// Analyzer turns per-channel float PCM into Vorbis packets.
type Analyzer interface {
	// HeaderOut builds the identification, comment and setup packets.
	HeaderOut() (ident, comment, setup *ogg.Packet, err error)

	// Buffer returns one writable slice of length frames per channel.
	Buffer(frames int) [][]float32

	// Wrote commits frames written into the last Buffer. Zero signals the
	// end of input.
	Wrote(frames int) error

	// BlockOut reports whether a block is ready for analysis and makes it
	// the working block.
	BlockOut() bool

	// Analysis runs the analysis transform on the working block.
	Analysis() error

	// BitrateAddBlock hands the analyzed block to bitrate management.
	BitrateAddBlock() error

	// FlushPacket returns the next finished packet, if any.
	FlushPacket() (*ogg.Packet, bool)

	// Close releases the analysis state.
	Close()
}
