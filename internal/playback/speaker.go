package playback

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ebitengine/oto/v3"
)

// Speaker plays audio on the default output device.
type Speaker struct {
	player *oto.Player
	writer *io.PipeWriter
	gain   float64
	buf    []byte
}

// NewSpeaker opens the audio device for mono 16-bit playback. Only one
// Speaker may exist per process.
func NewSpeaker(sampleRate int, gain float64) (*Speaker, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	reader, writer := io.Pipe()
	player := ctx.NewPlayer(reader)
	player.Play()

	return &Speaker{player: player, writer: writer, gain: gain}, nil
}

// Write blocks until the player has consumed the samples.
func (s *Speaker) Write(samples []float32) error {
	if cap(s.buf) < 2*len(samples) {
		s.buf = make([]byte, 2*len(samples))
	}
	buf := s.buf[:2*len(samples)]
	for i, x := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(Float32ToInt16(x, s.gain)))
	}
	if _, err := s.writer.Write(buf); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}
	return nil
}

func (s *Speaker) Close() error {
	_ = s.writer.Close()
	return s.player.Close()
}
