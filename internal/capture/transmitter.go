package capture

import (
	"math"
	"sync"
)

const tau = math.Pi * 2

// Transmitter synthesizes what a receiver would capture from a single FM
// station modulated by a sine tone. The station appears at its offset from
// the tuned centre, so retuning moves it like real hardware would.
type Transmitter struct {
	// Frequency of the station carrier in Hz.
	Frequency int

	// Tone is the modulating frequency in Hz; zero sends a bare carrier.
	Tone float64

	// Deviation is the peak frequency deviation in Hz.
	Deviation float64

	// Amplitude of the carrier in 8-bit units, at most 127.
	Amplitude float64

	mu         sync.Mutex
	sampleRate int
	offset     float64
	phase      float64
	tonePhase  float64
}

// NewTransmitter returns a transmitter for a station at freq.
func NewTransmitter(freq int, tone, deviation float64) *Transmitter {
	return &Transmitter{
		Frequency: freq,
		Tone:      tone,
		Deviation: deviation,
		Amplitude: 100,
	}
}

// Tune implements Source.
func (t *Transmitter) Tune(sampleRate, centerFreq int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sampleRate = sampleRate
	t.offset = float64(t.Frequency - centerFreq)
	return nil
}

// Read implements Source. It never runs dry.
func (t *Transmitter) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sampleRate <= 0 {
		return 0, ErrNotTuned
	}

	rate := float64(t.sampleRate)
	n := len(p) &^ 1
	for i := 0; i < n; i += 2 {
		p[i] = quantize(t.Amplitude * math.Cos(t.phase))
		p[i+1] = quantize(t.Amplitude * math.Sin(t.phase))

		inst := t.offset + t.Deviation*math.Sin(t.tonePhase)
		t.phase = math.Mod(t.phase+tau*inst/rate, tau)
		t.tonePhase = math.Mod(t.tonePhase+tau*t.Tone/rate, tau)
	}
	return n, nil
}

// Close implements Source.
func (t *Transmitter) Close() error { return nil }

func quantize(v float64) byte {
	return byte(math.Max(0, math.Min(255, math.Round(v+128))))
}
