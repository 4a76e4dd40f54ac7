// SPDX-License-Identifier: EPL-2.0

package encoder

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/ik5/oggstream/codec"
	"github.com/ik5/oggstream/internal/logging"
	"github.com/ik5/oggstream/metrics"
	"github.com/ik5/oggstream/ogg"
	"github.com/ik5/oggstream/pcm"
)

// BytesFunc receives encoded output. Each page arrives as two calls, header
// then body. The slice is only valid during the call.
type BytesFunc func(p []byte)

// Encoder turns interleaved 16-bit PCM into an Ogg Vorbis byte stream.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	info     codec.StreamInfo
	quality  int
	onBytes  BytesFunc
	analyzer codec.Analyzer
	stream   *ogg.Stream

	serial    uint32
	serialSet bool
	log       logrus.FieldLogger
	metrics   *metrics.Metrics

	pages       int
	eos         bool
	initialized bool
	finalized   bool
	closed      bool
}

// New sets up an encoder for the given stream layout and quality in
// [0, 100]. Output goes to onBytes; a nil onBytes discards it.
func New(info codec.StreamInfo, quality int, engine codec.AnalysisEngine, onBytes BytesFunc, opts ...Option) (*Encoder, error) {
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	q, err := codec.MapQuality(quality)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	if engine == nil {
		return nil, fmt.Errorf("%w: no analysis engine", ErrConstruction)
	}

	e := &Encoder{
		info:    info,
		quality: quality,
		onBytes: onBytes,
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.serialSet {
		e.serial = rand.Uint32()
	}
	e.log = logging.ForStream(e.log, "encoder").WithField("serial", e.serial)

	analyzer, err := engine.NewAnalyzer(info, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	e.analyzer = analyzer
	e.stream = ogg.NewStream(e.serial)
	return e, nil
}

// Info returns the stream layout.
func (e *Encoder) Info() codec.StreamInfo { return e.info }

// Quality returns the quality the encoder was created with.
func (e *Encoder) Quality() int { return e.quality }

// Serial returns the serial number of the logical stream.
func (e *Encoder) Serial() uint32 { return e.serial }

// Init writes the three header packets. They are flushed so that audio
// starts on a fresh page.
func (e *Encoder) Init() error {
	if e.finalized {
		return ErrFinalized
	}
	if e.initialized {
		return nil
	}

	ident, comment, setup, err := e.analyzer.HeaderOut()
	if err != nil {
		return fmt.Errorf("encoder: header out: %w", err)
	}
	e.stream.PacketIn(ident)
	e.stream.PacketIn(comment)
	e.stream.PacketIn(setup)
	for page := e.stream.Flush(); page != nil; page = e.stream.Flush() {
		e.emit(page)
	}

	e.initialized = true
	e.log.WithFields(logrus.Fields{
		"channels":    e.info.Channels,
		"sample_rate": e.info.SampleRate,
		"quality":     e.quality,
	}).Info("Stream headers written")
	return nil
}

// WriteFrames encodes frames frames of interleaved samples. Writing zero
// frames does nothing; use Finalize to end the stream.
func (e *Encoder) WriteFrames(samples []int16, frames int) error {
	if e.finalized {
		return ErrFinalized
	}
	if !e.initialized {
		return ErrNotInitialized
	}
	if frames <= 0 {
		return nil
	}
	if len(samples) < frames*e.info.Channels {
		return fmt.Errorf("%w: %d samples for %d frames of %d channels", ErrShortBuffer, len(samples), frames, e.info.Channels)
	}

	pcm.Deinterleave(e.analyzer.Buffer(frames), samples, frames)
	if err := e.analyzer.Wrote(frames); err != nil {
		return fmt.Errorf("encoder: wrote: %w", err)
	}
	e.metrics.EncodedFrames(frames)
	return e.process()
}

// WriteFrame encodes a single frame of interleaved samples.
func (e *Encoder) WriteFrame(frame []int16) error {
	return e.WriteFrames(frame, 1)
}

// Finalize marks the end of input and flushes the remaining audio, ending
// with the EOS page.
func (e *Encoder) Finalize() error {
	if e.finalized {
		return ErrFinalized
	}
	if !e.initialized {
		return ErrNotInitialized
	}

	if err := e.analyzer.Wrote(0); err != nil {
		return fmt.Errorf("encoder: end of input: %w", err)
	}
	err := e.process()
	e.finalized = true

	e.log.WithField("pages", e.pages).Debug("Stream finalized")
	return err
}

// Close releases the analysis state.
func (e *Encoder) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.finalized = true
	e.analyzer.Close()
}

// process drains every block the analyzer has ready into pages.
func (e *Encoder) process() error {
	for e.analyzer.BlockOut() {
		if err := e.analyzer.Analysis(); err != nil {
			return fmt.Errorf("encoder: analysis: %w", err)
		}
		if err := e.analyzer.BitrateAddBlock(); err != nil {
			return fmt.Errorf("encoder: bitrate: %w", err)
		}

		for {
			pkt, ok := e.analyzer.FlushPacket()
			if !ok {
				break
			}
			e.stream.PacketIn(pkt)

			for !e.eos {
				page := e.stream.PageOut()
				if page == nil {
					break
				}
				e.emit(page)
			}
		}
	}
	return nil
}

func (e *Encoder) emit(page *ogg.Page) {
	if e.onBytes != nil {
		e.onBytes(page.Header)
		e.onBytes(page.Body)
	}
	e.pages++
	e.eos = page.IsEOS()
	e.metrics.EncodedPage(page.Len())
}
