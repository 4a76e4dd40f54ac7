// SPDX-License-Identifier: EPL-2.0

// Command oggstream decodes Ogg Vorbis files to WAV and inspects audio
// files.
//
// Usage:
//
//	oggstream decode -in speech.ogg -out speech.wav [-config oggstream.yaml]
//	oggstream probe -in file.{ogg,wav,aiff,mp3}
//
// Settings come from the optional YAML file, then from OGGSTREAM_*
// variables, which may also be placed in a .env file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/ik5/oggstream"
	"github.com/ik5/oggstream/codec"
	"github.com/ik5/oggstream/decoder"
	"github.com/ik5/oggstream/formats/wav"
	"github.com/ik5/oggstream/internal/config"
	"github.com/ik5/oggstream/internal/logging"
	"github.com/ik5/oggstream/metrics"
)

const usage = `usage:
  oggstream decode -in <input.ogg> -out <output.wav> [-config <file.yaml>]
  oggstream probe -in <file>
`

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(a.run(os.Args[1:]))
}

type app struct {
	stdout io.Writer
	stderr io.Writer

	// engine overrides the Vorbis synthesis engine.
	engine codec.SynthesisEngine
}

func (a *app) run(args []string) int {
	if len(args) < 1 {
		fmt.Fprint(a.stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "decode":
		err = a.decode(args[1:])
	case "probe":
		err = a.probe(args[1:])
	case "-h", "-help", "--help", "help":
		fmt.Fprint(a.stdout, usage)
		return 0
	default:
		fmt.Fprintf(a.stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(a.stderr, "oggstream %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// serveMetrics starts the Prometheus listener when an address is set. The
// returned function stops it.
func serveMetrics(address string, reg *prometheus.Registry, log logrus.FieldLogger) func() {
	if address == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: address, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Metrics listener failed")
		}
	}()
	log.WithField("address", address).Info("Serving metrics")

	return func() { srv.Close() }
}

func (a *app) decode(args []string) error {
	fset := flag.NewFlagSet("decode", flag.ContinueOnError)
	fset.SetOutput(a.stderr)
	in := fset.String("in", "", "Ogg Vorbis input file")
	out := fset.String("out", "", "WAV output file")
	configPath := fset.String("config", "", "Path to configuration file")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return errors.New("both -in and -out are required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(a.stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	stop := serveMetrics(cfg.Metrics.Address, reg, logger)
	defer stop()

	src, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer dst.Close()

	var (
		d        *decoder.Decoder
		w        *wav.Writer
		writeErr error
		warnings int
	)

	opts := []decoder.Option{
		decoder.WithLogger(logger),
		decoder.WithMetrics(metrics.New(reg)),
		decoder.WithDiagnostics(func(error) { warnings++ }),
	}
	if a.engine != nil {
		opts = append(opts, decoder.WithEngine(a.engine))
	}

	d = decoder.New(func(samples []int16, _ int) {
		if writeErr != nil {
			return
		}
		if w == nil {
			w, writeErr = wav.NewWriter(dst, d.SampleRate(), d.Channels())
			if writeErr != nil {
				return
			}
		}
		writeErr = w.Write(samples)
	}, opts...)
	defer d.Close()

	buf := make([]byte, cfg.Decoder.ReadSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if derr := d.WriteData(buf[:n]); derr != nil {
				return derr
			}
			if writeErr != nil {
				return writeErr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", *in, err)
		}
	}
	d.Finalize()

	if d.State() != decoder.StateDecode {
		return fmt.Errorf("%w: stopped in %s state", oggstream.ErrTruncated, d.State())
	}

	frames := 0
	if w == nil {
		if err := wav.WriteWAV16(dst, d.SampleRate(), d.Channels(), nil); err != nil {
			return err
		}
	} else {
		frames = w.Frames()
		if err := w.Close(); err != nil {
			return err
		}
	}

	fmt.Fprintf(a.stdout, "%s: %d Hz, %d channels, %d frames", *out, d.SampleRate(), d.Channels(), frames)
	if warnings > 0 {
		fmt.Fprintf(a.stdout, ", %d warnings", warnings)
	}
	fmt.Fprintln(a.stdout)
	return nil
}

func (a *app) probe(args []string) error {
	fset := flag.NewFlagSet("probe", flag.ContinueOnError)
	fset.SetOutput(a.stderr)
	in := fset.String("in", "", "audio file")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("-in is required")
	}

	dec, err := oggstream.DefaultRegistry().Lookup(*in)
	if err != nil {
		return err
	}

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return err
	}
	defer src.Close()

	total := 0
	buf := make([]float32, max(src.BufSize(), src.Channels()))
	for {
		n, err := src.ReadSamples(buf)
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}

	frames := total / src.Channels()
	fmt.Fprintf(a.stdout, "%s: %d Hz, %d channels, %d frames (%.2fs)\n",
		*in, src.SampleRate(), src.Channels(), frames, float64(frames)/float64(src.SampleRate()))
	return nil
}
