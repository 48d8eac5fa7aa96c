package dsp

import (
	"math"

	"github.com/tphakala/simd/f32"
)

// squelch mutes the m demodulated samples when neither channel of the n
// decimated values deviates more than the squelch level. It reports whether
// the signal passed.
func (d *Decoder) squelch(n, m int) bool {
	level := d.tuning.SquelchLevel
	if level <= 0 || n == 0 {
		return true
	}
	devR := meanAbsDeviation(d.scratch, d.lowPass[:n], 0)
	devJ := meanAbsDeviation(d.scratch, d.lowPass[:n], 1)
	if devR > level || devJ > level {
		d.squelchHits = 0
		return true
	}

	clear(d.demod[:m])
	d.squelchHits++
	return false
}

// meanAbsDeviation returns the mean absolute deviation of one channel of an
// interleaved I/Q signal. scratch must hold len(signal)/2 values.
func meanAbsDeviation(scratch []float32, signal []int, channel int) float64 {
	ch := scratch[:len(signal)/2]
	for i := range ch {
		ch[i] = float32(signal[2*i+channel])
	}
	mean := f32.Sum(ch) / float32(len(ch))
	for i, v := range ch {
		ch[i] = float32(math.Abs(float64(v - mean)))
	}
	return float64(f32.Sum(ch) / float32(len(ch)))
}
