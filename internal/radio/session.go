// Package radio runs a receive session: capture, decode, audio stages and
// output.
package radio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"go-fm-receiver/internal/capture"
	"go-fm-receiver/internal/config"
	"go-fm-receiver/internal/dsp"
	"go-fm-receiver/internal/playback"
	"go-fm-receiver/internal/ringbuffer"
)

// Stats summarizes a finished session.
type Stats struct {
	Buffers   int
	Samples   int
	Squelched int
	Retunes   int
	Dropped   int
}

// Session owns the decoder. Retunes happen on the decode goroutine, between
// Process calls, so the decoder is only ever touched by one goroutine.
type Session struct {
	cfg     *config.Config
	source  capture.Source
	sink    playback.Sink
	decoder *dsp.Decoder
	deemph  *dsp.Deemphasis
	resamp  *dsp.Resampler
	log     *logrus.Entry

	frequency int
	stats     Stats
}

// New prepares a session for cfg.Frequency.
func New(cfg *config.Config, source capture.Source, sink playback.Sink, log *logrus.Entry) *Session {
	decoder := dsp.NewDecoder(cfg.Frequency, cfg.DecoderOptions())
	return &Session{
		cfg:       cfg,
		source:    source,
		sink:      sink,
		decoder:   decoder,
		deemph:    dsp.NewDeemphasis(decoder.AudioRate(), cfg.DeemphTau),
		resamp:    dsp.NewResampler(decoder.AudioRate(), cfg.OutputRate()),
		log:       log,
		frequency: cfg.Frequency,
	}
}

// Stats returns counters for the session so far.
func (s *Session) Stats() Stats { return s.stats }

// Run streams until the source is exhausted, ctx is done or cfg.Duration
// elapses. Reaching the end of the source or the duration is not an error;
// a cancelled ctx returns ctx.Err().
func (s *Session) Run(parent context.Context) error {
	ctx := parent
	if s.cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Duration)
		defer cancel()
	}

	if err := s.tune(); err != nil {
		return err
	}

	rb := ringbuffer.New[byte](s.cfg.RingBufferSize)
	stop := context.AfterFunc(ctx, rb.Close)
	defer stop()

	captureErr := make(chan error, 1)
	go func() {
		defer rb.Close()
		captureErr <- s.capture(rb)
	}()

	decodeErr := s.decode(ctx, rb)
	rb.Close()
	if err := <-captureErr; err != nil {
		return err
	}
	if decodeErr != nil {
		return decodeErr
	}
	return parent.Err()
}

func (s *Session) tune() error {
	log := s.log.WithFields(logrus.Fields{
		"frequency":    s.frequency,
		"capture_rate": s.decoder.CaptureRate(),
		"capture_freq": s.decoder.CaptureFreq(),
	})
	if err := s.source.Tune(s.decoder.CaptureRate(), s.decoder.CaptureFreq()); err != nil {
		return fmt.Errorf("tune source: %w", err)
	}
	log.Info("Tuned")
	return nil
}

// capture copies the source into rb until EOF or until rb is closed.
func (s *Session) capture(rb *ringbuffer.RingBuffer[byte]) error {
	buf := make([]byte, s.cfg.ChunkSize)
	for {
		n, err := s.source.Read(buf)
		if n > 0 {
			if werr := rb.Write(buf[:n]); werr != nil {
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			s.log.Debug("End of capture stream")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read capture: %w", err)
		}
	}
}

// decode stops as soon as ctx is done, discarding whatever is still buffered.
func (s *Session) decode(ctx context.Context, rb *ringbuffer.RingBuffer[byte]) error {
	var scan <-chan time.Time
	if s.cfg.ScanStep != 0 && s.cfg.ScanInterval > 0 {
		ticker := time.NewTicker(s.cfg.ScanInterval)
		defer ticker.Stop()
		scan = ticker.C
	}

	chunk := make([]byte, s.cfg.ChunkSize)
	for {
		select {
		case <-ctx.Done():
			s.log.Debug("Decoder: stopped")
			return nil
		case <-scan:
			s.frequency += s.cfg.ScanStep
			s.decoder.SetFrequency(s.frequency)
			s.stats.Retunes++
			if err := s.tune(); err != nil {
				return err
			}
		default:
		}

		n := rb.Read(chunk)
		if n == 0 {
			s.log.Debug("Decoder: end of stream")
			return nil
		}
		if tail := n % 8; tail != 0 {
			s.log.WithField("bytes", tail).Warn("Dropping partial rotation group at end of stream")
			s.stats.Dropped += tail
			n -= tail
			if n == 0 {
				continue
			}
		}

		audio, err := s.decoder.Process(chunk[:n])
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		s.stats.Buffers++
		if s.decoder.SquelchHits() > 0 {
			s.stats.Squelched++
		}

		s.deemph.Process(audio)
		out := s.resamp.Process(audio)
		s.stats.Samples += len(out)
		if err := s.sink.Write(out); err != nil {
			return fmt.Errorf("write audio: %w", err)
		}
	}
}
