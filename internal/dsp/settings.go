package dsp

const (
	// DefaultSampleRate is the base audio rate the decoder targets.
	DefaultSampleRate = 24000

	// DefaultCapacity is the number of scalar slots (I and Q counted
	// separately) in each scratch buffer.
	DefaultCapacity = 16384

	// targetCaptureRate keeps the receiver near 1 MS/s for any audio rate.
	targetCaptureRate = 1_000_000

	// adcHeadroom is the full-scale magnitude of a bias-removed 8-bit sample.
	adcHeadroom = 128
)

// Options holds the user-selectable parts of a tuning.
type Options struct {
	// SampleRate is the base audio output rate in Hz. Zero means
	// DefaultSampleRate.
	SampleRate int

	// PostDownSample is the second decimation factor applied after
	// demodulation. Values below 2 disable it.
	PostDownSample int

	// Edge shifts the capture centre by half the sample rate (0 or 1).
	Edge int

	// SquelchLevel is the mean absolute deviation at or below which a buffer
	// is muted. Zero disables the gate.
	SquelchLevel float64

	// FIREnable selects the kernel-weighted decimator over the square window.
	FIREnable bool

	// SymmetricFIR builds a true triangle kernel instead of a rising ramp.
	SymmetricFIR bool

	// CustomAtan selects the rational arctangent approximation.
	CustomAtan bool

	// AutoGain keeps the derived output scale instead of forcing it to 1.
	AutoGain bool

	// Capacity overrides DefaultCapacity when positive.
	Capacity int
}

// Tuning is the derived demodulator configuration. It is immutable between
// retunes.
type Tuning struct {
	Options

	// Frequency is the station frequency in Hz.
	Frequency int

	// SampleRate is the rate out of the demodulator, before post-downsampling.
	// Options.SampleRate keeps the base rate the tuning was derived from.
	SampleRate int

	// DownSample is the decimation factor of the low-pass stage.
	DownSample int

	// CaptureRate is the sample rate the receiver must be set to.
	CaptureRate int

	// CaptureFreq is the centre frequency the receiver must be tuned to.
	CaptureFreq int

	// OutputScale multiplies each decimated sample.
	OutputScale int
}

// DeriveTuning computes the capture settings for freq.
func DeriveTuning(freq int, opts Options) Tuning {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.PostDownSample < 1 {
		opts.PostDownSample = 1
	}
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}

	t := Tuning{Options: opts, Frequency: freq}

	// double sample rate to keep the phase step within ±π
	t.SampleRate = opts.SampleRate * opts.PostDownSample

	t.DownSample = targetCaptureRate/t.SampleRate + 1
	t.CaptureRate = t.DownSample * t.SampleRate
	t.CaptureFreq = freq + t.CaptureRate/4
	t.CaptureFreq += opts.Edge * t.SampleRate / 2

	t.OutputScale = (1 << 15) / (adcHeadroom * t.DownSample)
	if t.OutputScale < 1 || !opts.AutoGain {
		t.OutputScale = 1
	}
	return t
}

// AudioRate returns the rate of the emitted audio, after post-downsampling.
func (t Tuning) AudioRate() int {
	return t.SampleRate / t.PostDownSample
}
