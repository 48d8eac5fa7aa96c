package playback

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	recordBitDepth = 16
	wavFormatPCM   = 1
)

// WAVRecorder writes audio to a mono 16-bit WAV file.
type WAVRecorder struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
	gain    float64
}

// NewWAVRecorder creates path and writes audio at sampleRate to it.
func NewWAVRecorder(path string, sampleRate int, gain float64) (*WAVRecorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	return &WAVRecorder{
		file:    file,
		encoder: wav.NewEncoder(file, sampleRate, recordBitDepth, 1, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
			SourceBitDepth: recordBitDepth,
		},
		gain: gain,
	}, nil
}

func (r *WAVRecorder) Write(samples []float32) error {
	r.buf.Data = r.buf.Data[:0]
	for _, x := range samples {
		r.buf.Data = append(r.buf.Data, int(Float32ToInt16(x, r.gain)))
	}
	if err := r.encoder.Write(r.buf); err != nil {
		return fmt.Errorf("write recording: %w", err)
	}
	return nil
}

// Close finalizes the WAV header and closes the file.
func (r *WAVRecorder) Close() error {
	return errors.Join(r.encoder.Close(), r.file.Close())
}
