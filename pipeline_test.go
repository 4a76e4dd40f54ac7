// SPDX-License-Identifier: EPL-2.0

package oggstream

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/oggstream/codec"
	"github.com/ik5/oggstream/decoder"
	"github.com/ik5/oggstream/encoder"
	"github.com/ik5/oggstream/internal/codectest"
	"github.com/ik5/oggstream/pcm"
)

var stereo = codec.StreamInfo{SampleRate: 44100, Channels: 2}

func withFakeEngine() decoder.Option {
	return decoder.WithEngine(codectest.Engine{})
}

func assertClose(t *testing.T, want, got []int16) {
	t.Helper()

	require.Len(t, got, len(want))
	for i := range want {
		diff := int(got[i]) - int(want[i])
		require.True(t, diff >= -1 && diff <= 1, "sample %d: got %d want %d", i, got[i], want[i])
	}
}

func TestEncodePCM16_RoundTrip(t *testing.T) {
	t.Parallel()

	in := codectest.Sine(stereo.SampleRate, stereo.Channels, 6000, 440)

	var ogg bytes.Buffer
	require.NoError(t, EncodePCM16(&ogg, stereo, 50, codectest.Engine{}, in))

	for _, readSize := range []int{0, 1, 100, 4096, 100000} {
		got, info, err := DecodeToPCM16(bytes.NewReader(ogg.Bytes()), readSize, withFakeEngine())
		require.NoError(t, err, "read size %d", readSize)
		assert.Equal(t, stereo, info)
		assertClose(t, in, got)
	}
}

func TestDecodeToPCM16_Truncated(t *testing.T) {
	t.Parallel()

	var ogg bytes.Buffer
	require.NoError(t, EncodePCM16(&ogg, stereo, 50, codectest.Engine{}, codectest.Silence(2, 100)))

	for _, data := range [][]byte{nil, ogg.Bytes()[:40]} {
		got, _, err := DecodeToPCM16(bytes.NewReader(data), 0, withFakeEngine())
		assert.ErrorIs(t, err, ErrTruncated)
		assert.Empty(t, got)
	}
}

func TestDecodeToPCM16_InvalidContainer(t *testing.T) {
	t.Parallel()

	garbage := bytes.Repeat([]byte{0x55}, 2*decoder.MaxChunkSize)
	_, _, err := DecodeToPCM16(bytes.NewReader(garbage), 0, withFakeEngine())
	assert.ErrorIs(t, err, decoder.ErrInvalidContainer)
}

func TestDecodeToPCM16_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	_, _, err := DecodeToPCM16(iotest.ErrReader(boom), 0, withFakeEngine())
	assert.ErrorIs(t, err, boom)
}

func TestEncodeSource(t *testing.T) {
	t.Parallel()

	const frames = 5000
	src := codectest.NewSineSource(stereo.SampleRate, stereo.Channels, frames, 330)

	var ogg bytes.Buffer
	enc, err := encoder.New(stereo, 40, codectest.Engine{}, func(p []byte) { ogg.Write(p) })
	require.NoError(t, err)

	// An odd buffer size is trimmed to whole frames.
	n, err := EncodeSource(enc, src, 333)
	require.NoError(t, err)
	assert.Equal(t, frames, n)
	require.NoError(t, enc.Finalize())

	want := make([]int16, 0, frames*2)
	for f := range frames {
		for ch := range 2 {
			want = append(want, pcm.RoundToInt16(codectest.SineSample(stereo.SampleRate, 330, f, ch)))
		}
	}

	got, _, err := DecodeToPCM16(&ogg, 0, withFakeEngine())
	require.NoError(t, err)
	assertClose(t, want, got)
}

func TestEncodeSource_Mismatch(t *testing.T) {
	t.Parallel()

	enc, err := encoder.New(stereo, 40, codectest.Engine{}, nil)
	require.NoError(t, err)

	tests := []struct {
		name       string
		sampleRate int
		channels   int
	}{
		{"channels", 44100, 1},
		{"sample rate", 48000, 2},
	}

	for _, tt := range tests {
		n, err := EncodeSource(enc, codectest.NewSilentSource(tt.sampleRate, tt.channels, 10), 0)
		assert.ErrorIs(t, err, ErrFormatMismatch, tt.name)
		assert.Zero(t, n)
	}
}

type failingSource struct {
	*codectest.Source
	err error
}

func (s failingSource) ReadSamples([]float32) (int, error) { return 0, s.err }

func TestEncodeSource_ReadError(t *testing.T) {
	t.Parallel()

	enc, err := encoder.New(stereo, 40, codectest.Engine{}, nil)
	require.NoError(t, err)

	boom := errors.New("disk on fire")
	src := failingSource{Source: codectest.NewSilentSource(44100, 2, 10), err: boom}
	_, err = EncodeSource(enc, src, 0)
	assert.ErrorIs(t, err, boom)
}

func TestEncodeSource_Finalized(t *testing.T) {
	t.Parallel()

	enc, err := encoder.New(stereo, 40, codectest.Engine{}, nil)
	require.NoError(t, err)
	require.NoError(t, enc.Init())
	require.NoError(t, enc.Finalize())

	_, err = EncodeSource(enc, codectest.NewSilentSource(44100, 2, 10), 0)
	assert.ErrorIs(t, err, encoder.ErrFinalized)
}

func TestEncodePCM16_Errors(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := EncodePCM16(&out, stereo, 50, codectest.Engine{}, []int16{1, 2, 3})
	assert.ErrorIs(t, err, ErrFormatMismatch)

	err = EncodePCM16(&out, codec.StreamInfo{SampleRate: 44100}, 50, codectest.Engine{}, nil)
	assert.ErrorIs(t, err, encoder.ErrConstruction)

	err = EncodePCM16(&out, stereo, 101, codectest.Engine{}, nil)
	assert.ErrorIs(t, err, encoder.ErrConstruction)
	assert.Zero(t, out.Len())

	err = EncodePCM16(failingWriter{}, stereo, 50, codectest.Engine{}, codectest.Silence(2, 10))
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrShortWrite }
