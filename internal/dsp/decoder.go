package dsp

import (
	"fmt"

	"github.com/tphakala/simd/f32"
)

// emitDivisor maps discriminator output to audio amplitude.
const emitDivisor = 255

// Decoder turns unsigned 8-bit interleaved I/Q captured at CaptureRate and
// tuned to CaptureFreq into FM-demodulated audio at AudioRate.
//
// A Decoder is not safe for concurrent use. Process and SetFrequency must be
// called from one goroutine, or serialized by the caller.
type Decoder struct {
	tuning Tuning
	fir    Kernel

	// Streaming state, carried across Process calls.
	nowR, nowJ int
	index      int
	preR, preJ int
	primed     bool

	lowPass     []int
	demod       []int16
	out         []float32
	scratch     []float32
	signalLen   int
	squelchHits int
}

// NewDecoder returns a decoder tuned to freq.
func NewDecoder(freq int, opts Options) *Decoder {
	d := &Decoder{}
	d.retune(DeriveTuning(freq, opts))

	capacity := d.tuning.Capacity
	d.lowPass = make([]int, capacity)
	d.demod = make([]int16, capacity/2)
	d.out = make([]float32, capacity/2)
	d.scratch = make([]float32, capacity/2)
	return d
}

// SetFrequency retunes the decoder. Partial windows and the discriminator
// delay line are kept so the audio does not click; call Reset to drop them.
func (d *Decoder) SetFrequency(freq int) {
	d.retune(DeriveTuning(freq, d.tuning.Options))
}

func (d *Decoder) retune(t Tuning) {
	d.tuning = t
	d.fir = BuildFIR(t.DownSample, t.SymmetricFIR)
}

// Reset clears all streaming state.
func (d *Decoder) Reset() {
	d.nowR, d.nowJ, d.index = 0, 0, 0
	d.preR, d.preJ = 0, 0
	d.primed = false
	d.signalLen = 0
	d.squelchHits = 0
}

// Tuning returns the current derived configuration.
func (d *Decoder) Tuning() Tuning { return d.tuning }

// CaptureRate is the sample rate the receiver must deliver.
func (d *Decoder) CaptureRate() int { return d.tuning.CaptureRate }

// CaptureFreq is the centre frequency the receiver must be tuned to.
func (d *Decoder) CaptureFreq() int { return d.tuning.CaptureFreq }

// AudioRate is the sample rate of the buffers Process returns.
func (d *Decoder) AudioRate() int { return d.tuning.AudioRate() }

// SignalLen is the number of decimated values (I and Q counted separately)
// produced by the last Process call.
func (d *Decoder) SignalLen() int { return d.signalLen }

// SquelchHits counts consecutive buffers muted by the squelch gate.
func (d *Decoder) SquelchHits() int { return d.squelchHits }

// Process demodulates one raw buffer. raw is rotated in place and must be a
// non-empty multiple of 8 bytes. Malformed buffers are rejected before any
// state changes.
//
// The returned slice is reused by the next call.
func (d *Decoder) Process(raw []byte) ([]float32, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyBuffer
	}
	if len(raw)%8 != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrBufferLength, len(raw))
	}
	pairs := (d.index + len(raw)/2) / d.tuning.DownSample
	if 2*pairs > len(d.lowPass) {
		return nil, fmt.Errorf("%w: %d values, capacity %d", ErrCapacityExceeded, 2*pairs, len(d.lowPass))
	}

	Rotate90(raw)
	if d.tuning.FIREnable {
		d.signalLen = d.lowPassFIR(raw, &rotatedBias)
	} else {
		d.signalLen = d.lowPassSquare(raw, &rotatedBias)
	}

	m := d.demodulate(d.signalLen)
	d.squelch(d.signalLen, m)
	if d.tuning.PostDownSample > 1 {
		m = DownSampleSimple(d.demod[:m], d.tuning.PostDownSample)
	}

	out := d.out[:m]
	for i, v := range d.demod[:m] {
		out[i] = float32(v)
	}
	f32.Scale(out, out, 1.0/emitDivisor)
	return out, nil
}
