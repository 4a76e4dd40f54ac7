// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildAIFF lays out a FORM/AIFF file with a COMM and an SSND chunk.
// samples are big-endian signed integers of bitDepth bits.
func buildAIFF(sampleRate, channels, bitDepth int, samples []int) []byte {
	width := bitDepth / 8
	frames := len(samples) / channels

	var ssnd bytes.Buffer
	binary.Write(&ssnd, binary.BigEndian, uint32(0)) // offset
	binary.Write(&ssnd, binary.BigEndian, uint32(0)) // block size
	for _, v := range samples {
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(int32(v)<<(32-bitDepth)))
		ssnd.Write(b[:width])
	}

	exp := bits.Len(uint(sampleRate)) - 1
	var comm bytes.Buffer
	binary.Write(&comm, binary.BigEndian, uint16(channels))
	binary.Write(&comm, binary.BigEndian, uint32(frames))
	binary.Write(&comm, binary.BigEndian, uint16(bitDepth))
	binary.Write(&comm, binary.BigEndian, uint16(16383+exp))
	binary.Write(&comm, binary.BigEndian, uint64(sampleRate)<<(63-exp))

	var body bytes.Buffer
	body.WriteString("AIFF")
	body.WriteString("COMM")
	binary.Write(&body, binary.BigEndian, uint32(comm.Len()))
	body.Write(comm.Bytes())
	body.WriteString("SSND")
	binary.Write(&body, binary.BigEndian, uint32(ssnd.Len()))
	body.Write(ssnd.Bytes())

	var out bytes.Buffer
	out.WriteString("FORM")
	binary.Write(&out, binary.BigEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

// nonSeeker hides the Seek method of the wrapped reader.
type nonSeeker struct{ r io.Reader }

func (n nonSeeker) Read(p []byte) (int, error) { return n.r.Read(p) }

func TestDecoder_16Bit(t *testing.T) {
	t.Parallel()

	samples := []int{0, 16384, -16384, 32767, -32768, 1}
	data := buildAIFF(8000, 2, 16, samples)

	for name, r := range map[string]io.Reader{
		"seeker":     bytes.NewReader(data),
		"non-seeker": nonSeeker{bytes.NewReader(data)},
	} {
		src, err := Decoder{}.Decode(r)
		require.NoError(t, err, name)
		assert.Equal(t, 8000, src.SampleRate(), name)
		assert.Equal(t, 2, src.Channels(), name)

		buf := make([]float32, 16)
		n, err := src.ReadSamples(buf)
		assert.ErrorIs(t, err, io.EOF, name)
		require.Equal(t, len(samples), n, name)
		assert.Equal(t, []float32{0, 0.5, -0.5, 32767.0 / 32768, -1, 1.0 / 32768}, buf[:n], name)
		assert.NoError(t, src.Close())
	}
}

func TestDecoder_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		half     int
	}{
		{24, 1 << 22},
	}

	for _, tt := range tests {
		data := buildAIFF(44100, 1, tt.bitDepth, []int{tt.half, -tt.half})

		src, err := Decoder{}.Decode(bytes.NewReader(data))
		require.NoError(t, err, "bit depth %d", tt.bitDepth)
		assert.Equal(t, 44100, src.SampleRate())

		buf := make([]float32, 2)
		n, err := src.ReadSamples(buf)
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
		}
		require.Equal(t, 2, n)
		assert.Equal(t, []float32{0.5, -0.5}, buf, "bit depth %d", tt.bitDepth)
	}
}

func TestDecoder_NotAiff(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{
		nil,
		[]byte("RIFF....WAVEfmt "),
		[]byte("definitely not an audio file"),
	} {
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		assert.Nil(t, src)
		assert.ErrorIs(t, err, ErrNotAiffFile, "%q", data)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestDecoder_ReadError(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(errReader{})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
