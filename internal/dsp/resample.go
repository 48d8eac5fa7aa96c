package dsp

import (
	"math"
	"slices"
)

// sincTaps is the number of taps on each side of an interpolated sample.
const sincTaps = 16

// Resampler converts audio between two sample rates with a Hamming-windowed
// sinc interpolator. Input history is kept between calls so block edges do
// not click.
type Resampler struct {
	step   float64
	cutoff float64

	history []float32
	pos     float64
}

// NewResampler returns a resampler from inRate to outRate. It returns nil
// when the rates are equal or unset; a nil Resampler passes audio through.
func NewResampler(inRate, outRate int) *Resampler {
	if inRate <= 0 || outRate <= 0 || inRate == outRate {
		return nil
	}
	ratio := float64(outRate) / float64(inRate)
	return &Resampler{
		step:   1 / ratio,
		cutoff: min(1, ratio),
	}
}

// Process resamples one block. The returned slice is newly allocated.
func (r *Resampler) Process(input []float32) []float32 {
	if r == nil {
		return input
	}
	buf := append(slices.Clone(r.history), input...)

	var output []float32
	for ; r.pos+sincTaps < float64(len(buf)); r.pos += r.step {
		output = append(output, r.interpolate(buf, r.pos))
	}

	keep := min(len(buf), 2*sincTaps)
	drop := len(buf) - keep
	r.history = slices.Clone(buf[drop:])
	r.pos -= float64(drop)
	return output
}

func (r *Resampler) interpolate(buf []float32, pos float64) float32 {
	center := int(math.Round(pos))

	var acc, sumTaps float64
	for j := -sincTaps; j < sincTaps; j++ {
		idx := center + j
		if idx < 0 || idx >= len(buf) {
			continue
		}

		x := math.Pi * r.cutoff * (pos - float64(idx))
		sinc := 1.0
		if x != 0 {
			sinc = math.Sin(x) / x
		}
		window := 0.54 - 0.46*math.Cos(2*math.Pi*float64(j+sincTaps)/float64(2*sincTaps))
		tap := sinc * window

		acc += float64(buf[idx]) * tap
		sumTaps += tap
	}
	if sumTaps == 0 {
		return 0
	}
	return float32(acc / sumTaps)
}
