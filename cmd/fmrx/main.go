// Command fmrx demodulates a broadcast FM station from 8-bit I/Q.
//
// Usage:
//
//	fmrx -freq 99500000 -input capture.cu8
//	fmrx -freq 99500000 -input capture.wav -record out.wav -speaker=false
//	fmrx -freq 99500000 -scan-step 50000 -duration 30s   # synthetic station
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"go-fm-receiver/internal/capture"
	"go-fm-receiver/internal/config"
	"go-fm-receiver/internal/playback"
	"go-fm-receiver/internal/radio"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("fmrx failed")
	}
}

func run(log *logrus.Logger) error {
	cfg := config.New()

	flag.IntVar(&cfg.Frequency, "freq", cfg.Frequency, "Station frequency in Hz")
	flag.IntVar(&cfg.SampleRate, "rate", cfg.SampleRate, "Decoder audio rate in Hz")
	flag.IntVar(&cfg.PostDownSample, "post-downsample", cfg.PostDownSample, "Second decimation factor after demodulation")
	flag.IntVar(&cfg.Edge, "edge", cfg.Edge, "Offset the capture centre by half the audio rate (0 or 1)")
	flag.Float64Var(&cfg.SquelchLevel, "squelch", cfg.SquelchLevel, "Squelch deviation level, 0 disables")
	flag.BoolVar(&cfg.FIREnable, "fir", cfg.FIREnable, "Use the weighted FIR decimator")
	flag.BoolVar(&cfg.SymmetricFIR, "fir-symmetric", cfg.SymmetricFIR, "Use a triangular FIR kernel instead of a ramp")
	flag.BoolVar(&cfg.CustomAtan, "fast-atan", cfg.CustomAtan, "Use the approximate arctangent")
	flag.BoolVar(&cfg.AutoGain, "auto-gain", cfg.AutoGain, "Scale decimated samples by the derived output gain")
	flag.Float64Var(&cfg.DeemphTau, "deemph", cfg.DeemphTau, "De-emphasis time constant in seconds, 0 disables")
	flag.IntVar(&cfg.AudioRate, "audio-rate", cfg.AudioRate, "Resample audio to this rate in Hz, 0 keeps the decoder rate")
	flag.Float64Var(&cfg.Volume, "volume", cfg.Volume, "Output gain applied before 16-bit conversion")
	flag.StringVar(&cfg.Input, "input", cfg.Input, "IQ recording (.cu8 or .wav); empty uses a synthetic station")
	flag.Float64Var(&cfg.ToneFrequency, "tone", cfg.ToneFrequency, "Synthetic station tone in Hz")
	flag.Float64Var(&cfg.ToneDeviation, "deviation", cfg.ToneDeviation, "Synthetic station deviation in Hz")
	flag.IntVar(&cfg.ChunkSize, "chunk", cfg.ChunkSize, "Bytes per decoder call, a multiple of 8")
	flag.BoolVar(&cfg.Speaker, "speaker", cfg.Speaker, "Play audio on the default output device")
	flag.StringVar(&cfg.Record, "record", cfg.Record, "Record audio to this WAV file")
	flag.IntVar(&cfg.ScanStep, "scan-step", cfg.ScanStep, "Retune by this many Hz every scan interval, 0 disables")
	flag.DurationVar(&cfg.ScanInterval, "scan-interval", cfg.ScanInterval, "Time between scan retunes")
	flag.DurationVar(&cfg.Duration, "duration", cfg.Duration, "Stop after this long, 0 runs until the input ends")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.Parse()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	if err := cfg.Validate(); err != nil {
		return err
	}

	entry := logrus.NewEntry(log)

	var source capture.Source
	if cfg.Input != "" {
		source, err = capture.Open(cfg.Input, entry.WithField("input", cfg.Input))
		if err != nil {
			return err
		}
	} else {
		entry.Info("No input given, using a synthetic station")
		source = capture.NewTransmitter(cfg.Frequency, cfg.ToneFrequency, cfg.ToneDeviation)
	}
	defer source.Close()

	sink, err := openSinks(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			entry.WithError(err).Error("Closing audio output")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session := radio.New(cfg, source, sink, entry)
	err = session.Run(ctx)

	stats := session.Stats()
	entry.WithFields(logrus.Fields{
		"buffers":   stats.Buffers,
		"samples":   stats.Samples,
		"squelched": stats.Squelched,
		"retunes":   stats.Retunes,
		"dropped":   stats.Dropped,
	}).Info("Session finished")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func openSinks(cfg *config.Config) (playback.Sink, error) {
	var sinks playback.Multi
	if cfg.Record != "" {
		rec, err := playback.NewWAVRecorder(cfg.Record, cfg.OutputRate(), cfg.Volume)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, rec)
	}
	if cfg.Speaker {
		speaker, err := playback.NewSpeaker(cfg.OutputRate(), cfg.Volume)
		if err != nil {
			_ = sinks.Close()
			return nil, err
		}
		sinks = append(sinks, speaker)
	}
	return sinks, nil
}
