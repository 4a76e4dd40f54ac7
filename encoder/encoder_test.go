// SPDX-License-Identifier: EPL-2.0

package encoder

import (
	"bytes"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/oggstream/codec"
	"github.com/ik5/oggstream/decoder"
	"github.com/ik5/oggstream/internal/codectest"
	"github.com/ik5/oggstream/metrics"
	"github.com/ik5/oggstream/ogg"
)

var stereo = codec.StreamInfo{SampleRate: 44100, Channels: 2}

// captureEngine records the analyzer it creates and the quality it got.
type captureEngine struct {
	codectest.Engine
	analyzer *codectest.Analyzer
	quality  float32
}

func (e *captureEngine) NewAnalyzer(info codec.StreamInfo, quality float32) (codec.Analyzer, error) {
	a, err := e.Engine.NewAnalyzer(info, quality)
	if err != nil {
		return nil, err
	}
	e.analyzer = a.(*codectest.Analyzer)
	e.quality = quality
	return a, nil
}

// output records every callback in order.
type output struct {
	calls [][]byte
}

func (o *output) onBytes(p []byte) {
	o.calls = append(o.calls, bytes.Clone(p))
}

func (o *output) bytes() []byte {
	return bytes.Join(o.calls, nil)
}

// pages cuts the recorded output back into pages.
func (o *output) pages(t *testing.T) []*ogg.Page {
	t.Helper()

	var (
		sync  ogg.Sync
		pages []*ogg.Page
	)
	sync.Write(o.bytes())
	for {
		page, err := sync.PageOut()
		require.NoError(t, err)
		if page == nil {
			return pages
		}
		pages = append(pages, &ogg.Page{Header: bytes.Clone(page.Header), Body: bytes.Clone(page.Body)})
	}
}

func newTestEncoder(t *testing.T, out *output, opts ...Option) *Encoder {
	t.Helper()

	e, err := New(stereo, 50, codectest.Engine{BlockSize: 256}, out.onBytes, opts...)
	require.NoError(t, err)
	return e
}

func TestNew_ConstructionFailure(t *testing.T) {
	t.Parallel()

	engineErr := errors.New("engine says no")

	tests := []struct {
		name    string
		info    codec.StreamInfo
		quality int
		engine  codec.AnalysisEngine
		cause   error
	}{
		{"zero channels", codec.StreamInfo{SampleRate: 44100}, 50, codectest.Engine{}, codec.ErrInvalidInfo},
		{"too many channels", codec.StreamInfo{SampleRate: 44100, Channels: 256}, 50, codectest.Engine{}, codec.ErrInvalidInfo},
		{"zero rate", codec.StreamInfo{Channels: 2}, 50, codectest.Engine{}, codec.ErrInvalidInfo},
		{"quality too low", stereo, -1, codectest.Engine{}, codec.ErrInvalidQuality},
		{"quality too high", stereo, 101, codectest.Engine{}, codec.ErrInvalidQuality},
		{"engine rejects", stereo, 50, codectest.Engine{AnalyzerErr: engineErr}, engineErr},
		{"no engine", stereo, 50, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, err := New(tt.info, tt.quality, tt.engine, nil)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, ErrConstruction)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}
}

func TestNew_QualityMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		quality int
		want    float32
	}{
		{0, -0.1},
		{50, 0.45},
		{100, 1.0},
	}

	for _, tt := range tests {
		engine := &captureEngine{}
		_, err := New(stereo, tt.quality, engine, nil)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, engine.quality, 1e-6, "quality %d", tt.quality)
	}
}

func TestEncoder_InitWritesHeaderPages(t *testing.T) {
	t.Parallel()

	var out output
	e := newTestEncoder(t, &out, WithSerial(77))
	assert.Equal(t, uint32(77), e.Serial())
	assert.Empty(t, out.calls, "nothing is written before Init")

	require.NoError(t, e.Init())
	require.Len(t, out.calls, 4, "two pages, header and body each")

	pages := out.pages(t)
	require.Len(t, pages, 2)

	assert.True(t, pages[0].IsBOS())
	assert.Equal(t, 1, pages[0].Packets())
	assert.Equal(t, uint32(77), pages[0].Serial())
	kind, err := codec.HeaderKind(pages[0].Body)
	require.NoError(t, err)
	assert.Equal(t, codec.HeaderIdentification, kind)

	assert.False(t, pages[1].IsBOS())
	assert.Equal(t, 2, pages[1].Packets())
	assert.Equal(t, uint32(1), pages[1].PageNo())

	// A second Init writes nothing.
	require.NoError(t, e.Init())
	assert.Len(t, out.calls, 4)
}

func TestEncoder_RandomSerial(t *testing.T) {
	t.Parallel()

	seen := map[uint32]bool{}
	for range 8 {
		e, err := New(stereo, 50, codectest.Engine{}, nil)
		require.NoError(t, err)
		seen[e.Serial()] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestEncoder_HeaderThenBodyOrdering(t *testing.T) {
	t.Parallel()

	var out output
	e := newTestEncoder(t, &out)
	require.NoError(t, e.Init())
	require.NoError(t, e.WriteFrames(codectest.Sine(44100, 2, 5000, 440), 5000))
	require.NoError(t, e.Finalize())

	require.Zero(t, len(out.calls)%2)
	for i := 0; i < len(out.calls); i += 2 {
		header, body := out.calls[i], out.calls[i+1]
		require.GreaterOrEqual(t, len(header), 27)
		assert.Equal(t, []byte("OggS"), header[:4], "call %d", i)

		segments := int(header[26])
		require.Len(t, header, 27+segments)
		size := 0
		for _, v := range header[27:] {
			size += int(v)
		}
		assert.Len(t, body, size, "call %d", i+1)
	}
}

func TestEncoder_WriteBeforeInit(t *testing.T) {
	t.Parallel()

	var out output
	e := newTestEncoder(t, &out)
	assert.ErrorIs(t, e.WriteFrames(make([]int16, 4), 2), ErrNotInitialized)
	assert.ErrorIs(t, e.Finalize(), ErrNotInitialized)
}

func TestEncoder_ShortBuffer(t *testing.T) {
	t.Parallel()

	var out output
	e := newTestEncoder(t, &out)
	require.NoError(t, e.Init())
	assert.ErrorIs(t, e.WriteFrames(make([]int16, 5), 3), ErrShortBuffer)
	assert.ErrorIs(t, e.WriteFrame([]int16{1}), ErrShortBuffer)
}

func TestEncoder_ZeroFramesIsNoop(t *testing.T) {
	t.Parallel()

	var out output
	e := newTestEncoder(t, &out)
	require.NoError(t, e.Init())
	n := len(out.calls)

	require.NoError(t, e.WriteFrames(nil, 0))
	assert.Len(t, out.calls, n)

	// The stream is still open for audio.
	require.NoError(t, e.WriteFrames(make([]int16, 2*600), 600))
	require.NoError(t, e.Finalize())
	assert.Greater(t, len(out.calls), n)
}

func TestEncoder_FinalizeEndsStream(t *testing.T) {
	t.Parallel()

	var out output
	e := newTestEncoder(t, &out)
	require.NoError(t, e.Init())
	require.NoError(t, e.WriteFrames(codectest.Sine(44100, 2, 1000, 440), 1000))
	require.NoError(t, e.Finalize())

	pages := out.pages(t)
	last := pages[len(pages)-1]
	assert.True(t, last.IsEOS())
	assert.Equal(t, int64(1000), last.GranulePos())
	for _, p := range pages[:len(pages)-1] {
		assert.False(t, p.IsEOS())
	}

	n := len(out.calls)
	assert.ErrorIs(t, e.WriteFrames(make([]int16, 2), 1), ErrFinalized)
	assert.ErrorIs(t, e.Finalize(), ErrFinalized)
	assert.ErrorIs(t, e.Init(), ErrFinalized)
	assert.Len(t, out.calls, n)
}

func TestEncoder_FinalizeWithoutAudio(t *testing.T) {
	t.Parallel()

	var out output
	e := newTestEncoder(t, &out)
	require.NoError(t, e.Init())
	require.NoError(t, e.Finalize())

	pages := out.pages(t)
	require.Len(t, pages, 3)
	assert.True(t, pages[2].IsEOS())
}

// decodeAll runs the encoded output through a decoder.
func decodeAll(t *testing.T, data []byte) ([]int16, *decoder.Decoder) {
	t.Helper()

	var got []int16
	d := decoder.New(func(samples []int16, _ int) {
		got = append(got, samples...)
	}, decoder.WithEngine(codectest.Engine{}))
	require.NoError(t, d.WriteData(data))
	return got, d
}

func TestEncoder_RoundTrip(t *testing.T) {
	t.Parallel()

	in := codectest.Sine(44100, 2, 10000, 440)

	var out output
	e := newTestEncoder(t, &out)
	require.NoError(t, e.Init())
	for off := 0; off < 10000; off += 777 {
		frames := min(777, 10000-off)
		require.NoError(t, e.WriteFrames(in[off*2:], frames))
	}
	require.NoError(t, e.Finalize())

	got, d := decodeAll(t, out.bytes())
	assert.Equal(t, 44100, d.SampleRate())
	assert.Equal(t, 2, d.Channels())
	require.Len(t, got, len(in))
	for i := range in {
		diff := int(got[i]) - int(in[i])
		require.True(t, diff >= -1 && diff <= 1, "sample %d: got %d want %d", i, got[i], in[i])
	}
}

func TestEncoder_WriteFrameCountsOneFrame(t *testing.T) {
	t.Parallel()

	var out output
	e := newTestEncoder(t, &out)
	require.NoError(t, e.Init())
	for i := range 300 {
		require.NoError(t, e.WriteFrame([]int16{int16(i), int16(-i)}))
	}
	require.NoError(t, e.Finalize())

	got, _ := decodeAll(t, out.bytes())
	assert.Len(t, got, 600)
}

func TestEncoder_Silence(t *testing.T) {
	t.Parallel()

	var out output
	e := newTestEncoder(t, &out)
	require.NoError(t, e.Init())
	require.NoError(t, e.WriteFrames(codectest.Silence(2, 4410), 4410))
	require.NoError(t, e.Finalize())

	got, _ := decodeAll(t, out.bytes())
	require.Len(t, got, 2*4410)
	for i, v := range got {
		require.Zero(t, v, "sample %d", i)
	}
}

func TestEncoder_Close(t *testing.T) {
	t.Parallel()

	engine := &captureEngine{}
	e, err := New(stereo, 10, engine, nil)
	require.NoError(t, err)
	require.NoError(t, e.Init())

	e.Close()
	assert.True(t, engine.analyzer.Closed())
	assert.ErrorIs(t, e.WriteFrames(make([]int16, 2), 1), ErrFinalized)
	assert.NotPanics(t, e.Close)
}

func TestEncoder_Metrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	var out output
	e := newTestEncoder(t, &out, WithMetrics(m))
	require.NoError(t, e.Init())
	require.NoError(t, e.WriteFrames(codectest.Sine(44100, 2, 3000, 440), 3000))
	require.NoError(t, e.Finalize())

	assert.Equal(t, 3000.0, testutil.ToFloat64(m.EncoderFrames))
	assert.Equal(t, float64(len(out.bytes())), testutil.ToFloat64(m.EncoderBytes))
	assert.Equal(t, float64(len(out.pages(t))), testutil.ToFloat64(m.EncoderPages))
}
