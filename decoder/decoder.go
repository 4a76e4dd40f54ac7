// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ik5/oggstream/codec"
	"github.com/ik5/oggstream/formats/vorbis"
	"github.com/ik5/oggstream/internal/logging"
	"github.com/ik5/oggstream/metrics"
	"github.com/ik5/oggstream/ogg"
	"github.com/ik5/oggstream/pcm"
)

// State is the position of a Decoder in the header bootstrap.
type State int

const (
	// StateIdentification waits for the first page and the identification
	// header.
	StateIdentification State = iota
	// StateComment waits for the comment header.
	StateComment
	// StateSetup waits for the setup header.
	StateSetup
	// StateSynthesisInit has all headers and sets up synthesis.
	StateSynthesisInit
	// StateDecode decodes audio pages.
	StateDecode
)

func (s State) String() string {
	switch s {
	case StateIdentification:
		return "identification"
	case StateComment:
		return "comment"
	case StateSetup:
		return "setup"
	case StateSynthesisInit:
		return "synthesis-init"
	case StateDecode:
		return "decode"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// FramesFunc receives decoded audio as interleaved int16 samples. The slice
// holds frames*channels samples and is only valid during the call.
type FramesFunc func(samples []int16, frames int)

// Decoder turns an Ogg Vorbis byte stream, written in chunks of any size,
// into interleaved 16-bit PCM.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	onFrames FramesFunc
	engine   codec.SynthesisEngine
	log      logrus.FieldLogger
	metrics  *metrics.Metrics
	diag     func(error)

	sync    ogg.Sync
	stream  *ogg.Stream
	synth   codec.Synthesizer
	conv    *pcm.Converter
	chunker Chunker

	state State
	info  codec.StreamInfo

	err       error
	finalized bool
	closed    bool
}

// New returns a decoder delivering PCM to onFrames. A nil onFrames discards
// the audio.
func New(onFrames FramesFunc, opts ...Option) *Decoder {
	d := &Decoder{
		onFrames: onFrames,
		engine:   vorbis.Engine{},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = logging.ForStream(d.log, "decoder")
	d.synth = d.engine.NewSynthesizer()
	return d
}

// Init is kept for symmetry with the encoder. It has nothing to do.
func (d *Decoder) Init() error { return nil }

// State returns the current parse state.
func (d *Decoder) State() State { return d.state }

// Info returns the stream parameters, or the zero value until all headers
// have been read.
func (d *Decoder) Info() codec.StreamInfo { return d.info }

// SampleRate returns the stream sample rate, or 0 before the headers are in.
func (d *Decoder) SampleRate() int { return d.info.SampleRate }

// Channels returns the stream channel count, or 0 before the headers are in.
func (d *Decoder) Channels() int { return d.info.Channels }

// WriteData feeds p to the decoder. Decoded audio is delivered to the frame
// callback before WriteData returns.
//
// Running out of input is not an error. After a fatal error every later call
// returns the same error.
func (d *Decoder) WriteData(p []byte) error {
	if d.err != nil {
		return d.err
	}
	if d.finalized {
		return ErrFinalized
	}
	if len(p) == 0 {
		return nil
	}

	d.metrics.ReceivedBytes(len(p))
	if err := d.chunker.Each(p, d.process); err != nil {
		d.err = err
		d.metrics.DecodeError()
		d.log.WithError(err).WithField("state", d.state.String()).Error("Decoding failed")
		return err
	}
	return nil
}

// Finalize releases the synthesis state. Further writes fail with
// ErrFinalized.
func (d *Decoder) Finalize() {
	if d.finalized {
		return
	}
	d.finalized = true
	d.synth.Close()
}

// Close finalizes the decoder and drops all buffered input.
func (d *Decoder) Close() {
	if d.closed {
		return
	}
	d.Finalize()
	d.closed = true
	d.sync.Reset()
	d.stream = nil
	d.conv = nil
}

func (d *Decoder) process(chunk []byte) error {
	d.sync.Write(chunk)

	for {
		var err error
		switch d.state {
		case StateIdentification:
			err = d.readIdentification(len(chunk))
		case StateComment, StateSetup:
			err = d.readHeader()
		case StateSynthesisInit:
			err = d.initSynthesis()
		case StateDecode:
			err = d.decodePage()
		}

		if errors.Is(err, errNeedMoreData) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// nextPage returns the next page, skipping over bytes that are not one.
func (d *Decoder) nextPage() *ogg.Page {
	for {
		page, err := d.sync.PageOut()
		if err == nil {
			return page
		}
	}
}

func (d *Decoder) readIdentification(chunkLen int) error {
	page := d.nextPage()
	if page == nil {
		if chunkLen < MaxChunkSize {
			return errNeedMoreData
		}
		return ErrInvalidContainer
	}

	d.stream = ogg.NewStream(page.Serial())
	if err := d.stream.PageIn(page); err != nil {
		return fmt.Errorf("%w: first page: %w", ErrInvalidContainer, err)
	}

	pkt, err := d.stream.PacketOut()
	if err != nil {
		return fmt.Errorf("%w: identification: %w", ErrCorruptHeader, err)
	}
	if pkt == nil {
		return fmt.Errorf("%w: no packet on the first page", ErrCorruptHeader)
	}
	if err := d.synth.HeaderIn(pkt); err != nil {
		return fmt.Errorf("%w: identification: %w", ErrCorruptHeader, err)
	}

	d.state = StateComment
	return nil
}

// readHeader reads the comment or setup header. Both usually share the
// second page, so queued packets are tried before pulling a page.
func (d *Decoder) readHeader() error {
	for {
		pkt, err := d.stream.PacketOut()
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrCorruptHeader, d.state, err)
		}
		if pkt != nil {
			if err := d.synth.HeaderIn(pkt); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrCorruptHeader, d.state, err)
			}
			d.state++
			return nil
		}

		page := d.nextPage()
		if page == nil {
			return errNeedMoreData
		}
		// A bad page shows up as a hole on the next PacketOut.
		_ = d.stream.PageIn(page)
	}
}

func (d *Decoder) initSynthesis() error {
	info := d.synth.Info()
	if err := info.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptHeader, err)
	}

	d.log.WithFields(logrus.Fields{
		"channels":    info.Channels,
		"sample_rate": info.SampleRate,
		"vendor":      d.synth.Vendor(),
		"serial":      d.stream.Serial(),
	}).Info("Bitstream headers parsed")

	if err := d.synth.Init(); err != nil {
		return fmt.Errorf("%w: synthesis init: %w", ErrCorruptHeader, err)
	}

	d.info = info
	d.conv = pcm.NewConverter(info.Channels)
	d.state = StateDecode
	return nil
}

func (d *Decoder) decodePage() error {
	page, err := d.sync.PageOut()
	if err != nil {
		d.corrupt(err)
		return nil
	}
	if page == nil {
		return errNeedMoreData
	}

	if page.Serial() != d.stream.Serial() {
		d.report(fmt.Errorf("%w: serial %08x", ErrUnsupportedStream, page.Serial()))
		return nil
	}
	if err := d.stream.PageIn(page); err != nil {
		d.corrupt(err)
		return nil
	}
	d.metrics.DecodedPage()
	eos := page.IsEOS()

	for {
		pkt, err := d.stream.PacketOut()
		if err != nil {
			d.corrupt(err)
			if errors.Is(err, ogg.ErrHole) {
				// The packets on either side of a gap do not overlap.
				d.synth.Reset()
			}
			continue
		}
		if pkt == nil {
			break
		}
		d.synthesize(pkt)
	}

	if eos {
		d.log.WithField("granule", page.GranulePos()).Debug("End of stream")
		d.synth.Reset()
	}
	return nil
}

func (d *Decoder) synthesize(pkt *ogg.Packet) {
	if err := d.synth.Synthesis(pkt); err != nil {
		d.log.WithError(err).WithField("packet", pkt.PacketNo).Debug("Skipping undecodable packet")
	} else if err := d.synth.BlockIn(); err != nil {
		d.log.WithError(err).WithField("packet", pkt.PacketNo).Debug("Skipping rejected block")
	}

	for {
		out := d.synth.PCMOut()
		if len(out) == 0 || len(out[0]) == 0 {
			return
		}

		samples, frames := d.conv.Interleave(out, len(out[0]))
		if d.onFrames != nil {
			d.onFrames(samples, frames)
		}
		d.metrics.DecodedFrames(frames)

		if err := d.synth.Read(frames); err != nil {
			d.log.WithError(err).Debug("Synthesizer refused read")
			return
		}
	}
}

func (d *Decoder) corrupt(err error) {
	d.metrics.CorruptPage()
	d.report(fmt.Errorf("%w: %w", ErrCorruptPage, err))
}

func (d *Decoder) report(err error) {
	d.log.WithError(err).Warn("Continuing past bad data")
	if d.diag != nil {
		d.diag(err)
	}
}
