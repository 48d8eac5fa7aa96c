// Package capture provides sources of unsigned 8-bit interleaved I/Q.
package capture

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnsupportedFormat is returned for IQ WAV files that are not 8 or
	// 16-bit stereo PCM.
	ErrUnsupportedFormat = errors.New("capture: unsupported iq wav format")

	// ErrNotTuned is returned by sources that cannot produce samples before
	// Tune is called.
	ErrNotTuned = errors.New("capture: source not tuned")
)

// Source is a radio receiver, or a stand-in for one.
type Source interface {
	// Tune sets the sample rate and centre frequency in Hz. It may be called
	// while another goroutine is blocked in Read.
	Tune(sampleRate, centerFreq int) error

	// Read fills p with interleaved unsigned 8-bit I/Q, 128 being zero.
	Read(p []byte) (int, error)

	Close() error
}

// Open opens an IQ recording. WAV files are decoded, anything else is read
// as raw unsigned 8-bit I/Q.
func Open(path string, log *logrus.Entry) (Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open iq file: %w", err)
	}

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		log.WithField("path", path).Info("Not a valid WAV file, reading raw IQ")
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("rewind iq file: %w", err)
		}
		return &RawFile{file: file, log: log}, nil
	}

	src, err := newWAVFile(file, decoder, log)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return src, nil
}

// RawFile reads a raw .cu8 recording.
type RawFile struct {
	file *os.File
	log  *logrus.Entry
}

// Tune only records the request; a recording has a fixed rate and centre.
func (r *RawFile) Tune(sampleRate, centerFreq int) error {
	r.log.WithFields(logrus.Fields{
		"sample_rate": sampleRate,
		"center_freq": centerFreq,
	}).Debug("Raw recording ignores tune request")
	return nil
}

func (r *RawFile) Read(p []byte) (int, error) {
	return r.file.Read(p)
}

func (r *RawFile) Close() error {
	return r.file.Close()
}
