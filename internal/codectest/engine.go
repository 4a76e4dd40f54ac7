// SPDX-License-Identifier: EPL-2.0

package codectest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/ik5/oggstream/codec"
)

// Vendor is the vendor string written to the comment header.
const Vendor = "oggstream codectest engine"

// DefaultBlockSize is the number of frames per audio packet when Engine
// leaves BlockSize unset.
const DefaultBlockSize = 1024

// setupPayload is the body of the setup header after the common prefix.
const setupPayload = "codectest"

var errShortPacket = errors.New("codectest: truncated packet")

// Engine is a deterministic codec engine for tests. Audio packets carry the
// raw float samples, so a decode reproduces the encoded input exactly.
//
// It implements both codec.AnalysisEngine and codec.SynthesisEngine.
type Engine struct {
	// BlockSize is the number of frames per audio packet.
	BlockSize int

	// AnalyzerErr, when set, is returned by NewAnalyzer.
	AnalyzerErr error
}

var (
	_ codec.AnalysisEngine  = Engine{}
	_ codec.SynthesisEngine = Engine{}
)

func (e Engine) blockSize() int {
	if e.BlockSize > 0 {
		return e.BlockSize
	}
	return DefaultBlockSize
}

// NewAnalyzer implements codec.AnalysisEngine.
func (e Engine) NewAnalyzer(info codec.StreamInfo, quality float32) (codec.Analyzer, error) {
	if e.AnalyzerErr != nil {
		return nil, e.AnalyzerErr
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if quality < codec.MinQuality || quality > codec.MaxQuality {
		return nil, fmt.Errorf("%w: engine quality %v", codec.ErrInvalidQuality, quality)
	}
	return &Analyzer{
		info:      info,
		quality:   quality,
		blockSize: e.blockSize(),
		pending:   make([][]float32, info.Channels),
		buffer:    make([][]float32, info.Channels),
	}, nil
}

// NewSynthesizer implements codec.SynthesisEngine.
func (e Engine) NewSynthesizer() codec.Synthesizer {
	return &Synthesizer{}
}

// IdentHeader builds an identification header packet.
func IdentHeader(info codec.StreamInfo, nominalBitrate int32) []byte {
	p := codec.HeaderPrefix(codec.HeaderIdentification)
	p = binary.LittleEndian.AppendUint32(p, 0) // version
	p = append(p, byte(info.Channels))
	p = binary.LittleEndian.AppendUint32(p, uint32(info.SampleRate))
	p = binary.LittleEndian.AppendUint32(p, 0)
	p = binary.LittleEndian.AppendUint32(p, uint32(nominalBitrate))
	p = binary.LittleEndian.AppendUint32(p, 0)
	p = append(p, 0xb8, 1) // block sizes 256/2048, framing bit
	return p
}

// CommentHeader builds a comment header packet with no user comments.
func CommentHeader(vendor string) []byte {
	p := codec.HeaderPrefix(codec.HeaderComment)
	p = binary.LittleEndian.AppendUint32(p, uint32(len(vendor)))
	p = append(p, vendor...)
	p = binary.LittleEndian.AppendUint32(p, 0)
	return append(p, 1)
}

// SetupHeader builds a setup header packet.
func SetupHeader() []byte {
	return append(codec.HeaderPrefix(codec.HeaderSetup), setupPayload...)
}

// AudioPacket encodes per-channel samples the way the engine does.
func AudioPacket(block [][]float32) []byte {
	frames := 0
	if len(block) > 0 {
		frames = len(block[0])
	}
	p := make([]byte, 0, 5+4*frames*len(block))
	p = append(p, 0)
	p = binary.LittleEndian.AppendUint32(p, uint32(frames))
	for i := range frames {
		for _, ch := range block {
			p = binary.LittleEndian.AppendUint32(p, math.Float32bits(ch[i]))
		}
	}
	return p
}

func parseIdent(data []byte) (codec.StreamInfo, error) {
	if len(data) < 30 {
		return codec.StreamInfo{}, errShortPacket
	}
	if v := binary.LittleEndian.Uint32(data[7:11]); v != 0 {
		return codec.StreamInfo{}, fmt.Errorf("codectest: unsupported version %d", v)
	}
	if data[29]&1 == 0 {
		return codec.StreamInfo{}, fmt.Errorf("codectest: missing framing bit")
	}
	return codec.StreamInfo{
		Channels:   int(data[11]),
		SampleRate: int(binary.LittleEndian.Uint32(data[12:16])),
	}, nil
}

func parseAudio(data []byte, channels int) ([][]float32, error) {
	if len(data) < 5 {
		return nil, errShortPacket
	}
	if data[0]&1 != 0 {
		return nil, codec.ErrNotAudio
	}
	frames := int(binary.LittleEndian.Uint32(data[1:5]))
	body := data[5:]
	if len(body) != 4*frames*channels {
		return nil, errShortPacket
	}

	block := make([][]float32, channels)
	for ch := range block {
		block[ch] = make([]float32, frames)
	}
	for i := range frames {
		for ch := range channels {
			bits := binary.LittleEndian.Uint32(body[4*(i*channels+ch):])
			block[ch][i] = math.Float32frombits(bits)
		}
	}
	return block, nil
}
