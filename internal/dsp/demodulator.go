package dsp

import "math"

// discScale maps an angle of π to the discriminator output.
const discScale = 1 << 14

// atanCoeff is the constant of atan(z) ≈ z / (1 + 0.28086·z²), |z| ≤ 1.
// Its error stays under 0.0047 rad, about 24.4 discriminator units.
const atanCoeff = 0.28086

// PolarDiscriminant returns the phase step from (br, bj) to (ar, aj), scaled
// so that π maps to 2^14.
func PolarDiscriminant(ar, aj, br, bj int) int16 {
	cr, cj := multiply(ar, aj, br, -bj)
	return toPCM(math.Atan2(float64(cj), float64(cr)))
}

// PolarDiscFast is PolarDiscriminant with a rational arctangent.
func PolarDiscFast(ar, aj, br, bj int) int16 {
	cr, cj := multiply(ar, aj, br, -bj)
	return toPCM(FastAtan2(float64(cj), float64(cr)))
}

// FastAtan2 approximates math.Atan2. FastAtan2(0, 0) is 0.
func FastAtan2(y, x float64) float64 {
	if x == 0 && y == 0 {
		return 0
	}
	ax, ay := math.Abs(x), math.Abs(y)

	var angle float64
	if ax >= ay {
		z := ay / ax
		angle = z / (1 + atanCoeff*z*z)
	} else {
		z := ax / ay
		angle = math.Pi/2 - z/(1+atanCoeff*z*z)
	}
	if x < 0 {
		angle = math.Pi - angle
	}
	if y < 0 {
		angle = -angle
	}
	return angle
}

func multiply(ar, aj, br, bj int) (int, int) {
	return ar*br - aj*bj, aj*br + ar*bj
}

func toPCM(angle float64) int16 {
	v := angle / math.Pi * discScale
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

// demodulate runs the discriminator over the first n values of d.lowPass.
// The first pair ever seen only primes the delay line.
func (d *Decoder) demodulate(n int) int {
	disc := PolarDiscriminant
	if d.tuning.CustomAtan {
		disc = PolarDiscFast
	}

	i, m := 0, 0
	preR, preJ := d.preR, d.preJ
	if !d.primed && n >= 2 {
		preR, preJ = d.lowPass[0], d.lowPass[1]
		d.primed = true
		i = 2
	}
	for ; i < n; i += 2 {
		r, j := d.lowPass[i], d.lowPass[i+1]
		d.demod[m] = disc(r, j, preR, preJ)
		preR, preJ = r, j
		m++
	}
	d.preR, d.preJ = preR, preJ
	return m
}
