package config

import (
	"errors"
	"fmt"
	"time"

	"go-fm-receiver/internal/dsp"
)

// Config holds all the configuration parameters for the receiver.
type Config struct {
	// Station and demodulator settings.
	Frequency      int
	SampleRate     int
	PostDownSample int
	Edge           int
	SquelchLevel   float64
	FIREnable      bool
	SymmetricFIR   bool
	CustomAtan     bool
	AutoGain       bool

	// Audio stages after the decoder.
	DeemphTau float64
	AudioRate int
	Volume    float64

	// Capture and buffering.
	Input          string
	ToneFrequency  float64
	ToneDeviation  float64
	ChunkSize      int
	RingBufferSize int

	// Output.
	Speaker bool
	Record  string

	// Scanning and session lifetime.
	ScanStep     int
	ScanInterval time.Duration
	Duration     time.Duration

	LogLevel string
}

// New returns a new Config with default values.
func New() *Config {
	return &Config{
		Frequency:      99_500_000,
		SampleRate:     dsp.DefaultSampleRate,
		PostDownSample: 1,
		DeemphTau:      dsp.TauEurope,
		Volume:         1.0 / 64,
		ToneFrequency:  1000,
		ToneDeviation:  5000,
		ChunkSize:      16 * 1024,
		RingBufferSize: 2 * 1_008_000 * 2, // 2s of IQ at the default capture rate
		Speaker:        true,
		ScanInterval:   time.Second,
		LogLevel:       "info",
	}
}

// Validation errors.
var (
	ErrFrequency = errors.New("config: frequency must be positive")
	ErrRate      = errors.New("config: sample rate out of range")
	ErrChunkSize = errors.New("config: chunk size must be a positive multiple of 8")
	ErrEdge      = errors.New("config: edge must be 0 or 1")
	ErrNoOutput  = errors.New("config: no audio output selected")
	ErrCapacity  = errors.New("config: chunk size exceeds decoder capacity")
)

// Validate checks that the configuration can drive a session.
func (c *Config) Validate() error {
	if c.Frequency <= 0 {
		return fmt.Errorf("%w: %d", ErrFrequency, c.Frequency)
	}
	if c.SampleRate <= 0 || c.SampleRate > 1_000_000 {
		return fmt.Errorf("%w: sample rate %d", ErrRate, c.SampleRate)
	}
	if c.PostDownSample < 1 {
		return fmt.Errorf("%w: post downsample %d", ErrRate, c.PostDownSample)
	}
	if c.AudioRate < 0 {
		return fmt.Errorf("%w: audio rate %d", ErrRate, c.AudioRate)
	}
	if c.Edge != 0 && c.Edge != 1 {
		return fmt.Errorf("%w: %d", ErrEdge, c.Edge)
	}
	if c.ChunkSize <= 0 || c.ChunkSize%8 != 0 {
		return fmt.Errorf("%w: %d", ErrChunkSize, c.ChunkSize)
	}
	// A chunk may complete one extra pair from the window carried over.
	tn := dsp.DeriveTuning(c.Frequency, c.DecoderOptions())
	if need := 2 * (c.ChunkSize/2/tn.DownSample + 1); need > tn.Capacity {
		return fmt.Errorf("%w: chunk %d needs %d slots at decimation %d, capacity %d",
			ErrCapacity, c.ChunkSize, need, tn.DownSample, tn.Capacity)
	}
	if c.RingBufferSize <= c.ChunkSize {
		return fmt.Errorf("config: ring buffer size %d must exceed chunk size %d", c.RingBufferSize, c.ChunkSize)
	}
	if c.SquelchLevel < 0 || c.DeemphTau < 0 || c.Volume < 0 {
		return errors.New("config: squelch level, de-emphasis and volume must not be negative")
	}
	if !c.Speaker && c.Record == "" {
		return ErrNoOutput
	}
	return nil
}

// DecoderOptions maps the configuration onto decoder options.
func (c *Config) DecoderOptions() dsp.Options {
	return dsp.Options{
		SampleRate:     c.SampleRate,
		PostDownSample: c.PostDownSample,
		Edge:           c.Edge,
		SquelchLevel:   c.SquelchLevel,
		FIREnable:      c.FIREnable,
		SymmetricFIR:   c.SymmetricFIR,
		CustomAtan:     c.CustomAtan,
		AutoGain:       c.AutoGain,
	}
}

// OutputRate is the rate audio reaches the sinks at.
func (c *Config) OutputRate() int {
	if c.AudioRate > 0 {
		return c.AudioRate
	}
	return c.SampleRate
}
