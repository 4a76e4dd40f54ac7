// SPDX-License-Identifier: EPL-2.0

package oggstream

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/oggstream/audio"
	"github.com/ik5/oggstream/codec"
	"github.com/ik5/oggstream/decoder"
	"github.com/ik5/oggstream/encoder"
	"github.com/ik5/oggstream/pcm"
)

const defaultBufferSize = 4096

// DecodeToPCM16 reads an Ogg Vorbis stream from r in readSize chunks and
// collects the decoded audio as interleaved 16-bit PCM.
//
// A readSize below 1 uses 4096. The stream layout is returned alongside the
// samples. Input that ends before the headers are complete yields
// ErrTruncated.
//
// Example:
//
//	f, _ := os.Open("speech.ogg")
//	samples, info, err := oggstream.DecodeToPCM16(f, 4096)
//	if err != nil {
//	    return err
//	}
//	// samples holds info.Channels interleaved channels at info.SampleRate
func DecodeToPCM16(r io.Reader, readSize int, opts ...decoder.Option) ([]int16, codec.StreamInfo, error) {
	if readSize < 1 {
		readSize = defaultBufferSize
	}

	var samples []int16
	dec := decoder.New(func(p []int16, _ int) {
		samples = append(samples, p...)
	}, opts...)
	defer dec.Close()

	buf := make([]byte, readSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if werr := dec.WriteData(buf[:n]); werr != nil {
				return samples, dec.Info(), werr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return samples, dec.Info(), fmt.Errorf("read input: %w", err)
		}
	}
	dec.Finalize()

	if dec.State() != decoder.StateDecode {
		return samples, dec.Info(), fmt.Errorf("%w: stopped in %s state", ErrTruncated, dec.State())
	}
	return samples, dec.Info(), nil
}

// EncodeSource feeds every sample of src to enc and returns the number of
// frames written. enc is initialized if needed but not finalized, so several
// sources can be concatenated into one stream.
//
// The source must match the encoder's channel count and sample rate.
// Samples are converted to 16-bit with the same rounding the decoder uses.
func EncodeSource(enc *encoder.Encoder, src audio.Source, bufferSize int) (int, error) {
	info := enc.Info()
	if src.Channels() != info.Channels || src.SampleRate() != info.SampleRate {
		return 0, fmt.Errorf("%w: source is %d Hz x %d, stream is %d Hz x %d",
			ErrFormatMismatch, src.SampleRate(), src.Channels(), info.SampleRate, info.Channels)
	}

	if err := enc.Init(); err != nil {
		return 0, err
	}

	if bufferSize < info.Channels {
		bufferSize = defaultBufferSize
	}
	bufferSize -= bufferSize % info.Channels

	buf := make([]float32, bufferSize)
	samples := make([]int16, bufferSize)
	total := 0

	for {
		n, err := src.ReadSamples(buf)
		n -= n % info.Channels
		if n > 0 {
			for i, x := range buf[:n] {
				samples[i] = pcm.RoundToInt16(x)
			}
			frames := n / info.Channels
			if werr := enc.WriteFrames(samples[:n], frames); werr != nil {
				return total, werr
			}
			total += frames
		}

		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("read source: %w", err)
		}
	}
}

// EncodePCM16 encodes interleaved samples as a complete Ogg Vorbis stream
// written to w. quality is in [0, 100].
func EncodePCM16(w io.Writer, info codec.StreamInfo, quality int, engine codec.AnalysisEngine, samples []int16, opts ...encoder.Option) error {
	if info.Channels > 0 && len(samples)%info.Channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrFormatMismatch, len(samples), info.Channels)
	}

	var werr error
	enc, err := encoder.New(info, quality, engine, func(p []byte) {
		if werr == nil {
			_, werr = w.Write(p)
		}
	}, opts...)
	if err != nil {
		return err
	}
	defer enc.Close()

	if err := enc.Init(); err != nil {
		return err
	}
	if err := enc.WriteFrames(samples, len(samples)/info.Channels); err != nil {
		return err
	}
	if err := enc.Finalize(); err != nil {
		return err
	}
	if werr != nil {
		return fmt.Errorf("write output: %w", werr)
	}
	return nil
}
