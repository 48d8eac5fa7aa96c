package capture

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"
)

// WAVFile reads an IQ recording stored as stereo PCM, I left and Q right.
type WAVFile struct {
	file    *os.File
	decoder *wav.Decoder
	buf     *audio.IntBuffer
	log     *logrus.Entry
}

func newWAVFile(file *os.File, decoder *wav.Decoder, log *logrus.Entry) (*WAVFile, error) {
	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("seek to pcm data: %w", err)
	}

	log.WithFields(logrus.Fields{
		"bit_depth":   decoder.BitDepth,
		"sample_rate": decoder.SampleRate,
		"channels":    decoder.NumChans,
	}).Info("Reading IQ from WAV file")

	if decoder.NumChans != 2 || (decoder.BitDepth != 8 && decoder.BitDepth != 16) {
		return nil, fmt.Errorf("%w: %d-bit, %d channels", ErrUnsupportedFormat, decoder.BitDepth, decoder.NumChans)
	}

	return &WAVFile{
		file:    file,
		decoder: decoder,
		buf:     &audio.IntBuffer{Format: decoder.Format()},
		log:     log,
	}, nil
}

// SampleRate is the rate the recording was made at.
func (w *WAVFile) SampleRate() int {
	return int(w.decoder.SampleRate)
}

// Tune warns when the recording does not match the requested rate, since
// the decoded audio would then play at the wrong pitch.
func (w *WAVFile) Tune(sampleRate, centerFreq int) error {
	if sampleRate != w.SampleRate() {
		w.log.WithFields(logrus.Fields{
			"recorded":  w.SampleRate(),
			"requested": sampleRate,
		}).Warn("IQ recording sample rate differs from capture rate")
	}
	return nil
}

// Read converts PCM samples to unsigned 8-bit; 16-bit samples keep their
// top byte.
func (w *WAVFile) Read(p []byte) (int, error) {
	if cap(w.buf.Data) < len(p) {
		w.buf.Data = make([]int, len(p))
	}
	w.buf.Data = w.buf.Data[:len(p)]

	n, err := w.decoder.PCMBuffer(w.buf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("read pcm: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range w.buf.Data[:n] {
		if w.decoder.BitDepth == 16 {
			p[i] = byte(v>>8 + 128)
		} else {
			p[i] = byte(v)
		}
	}
	return n, nil
}

func (w *WAVFile) Close() error {
	return w.file.Close()
}
