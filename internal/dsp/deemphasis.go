package dsp

// Common de-emphasis time constants.
const (
	TauEurope = 50e-6
	TauUS     = 75e-6
)

// Deemphasis is a first-order low-pass that undoes broadcast FM
// pre-emphasis.
type Deemphasis struct {
	alpha float32
	prev  float32
}

// NewDeemphasis creates a de-emphasis filter for audio at sampleRate with
// time constant tau in seconds. It returns nil when tau is not positive; a
// nil filter passes audio through.
func NewDeemphasis(sampleRate int, tau float64) *Deemphasis {
	if tau <= 0 || sampleRate <= 0 {
		return nil
	}
	dt := 1.0 / float64(sampleRate)
	return &Deemphasis{alpha: float32(dt / (tau + dt))}
}

// Filter applies the filter to a single sample.
func (d *Deemphasis) Filter(x float32) float32 {
	d.prev += d.alpha * (x - d.prev)
	return d.prev
}

// Process filters buf in place.
func (d *Deemphasis) Process(buf []float32) {
	if d == nil {
		return
	}
	for i, x := range buf {
		buf[i] = d.Filter(x)
	}
}
