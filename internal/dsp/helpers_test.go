package dsp

import "math"

var flatBias = [8]int{128, 128, 128, 128, 128, 128, 128, 128}

// fmCapture returns n complex samples of an FM station as a receiver tuned
// for DeriveTuning would capture them: the carrier sits rate/4 below the
// centre and is modulated by a sine tone.
func fmCapture(n, rate int, tone, deviation float64) []byte {
	buf := make([]byte, 2*n)
	offset := -float64(rate) / 4
	var phase, tonePhase float64
	for i := 0; i < n; i++ {
		buf[2*i] = byte(math.Round(128 + 100*math.Cos(phase)))
		buf[2*i+1] = byte(math.Round(128 + 100*math.Sin(phase)))
		inst := offset + deviation*math.Sin(tonePhase)
		phase = math.Mod(phase+2*math.Pi*inst/float64(rate), 2*math.Pi)
		tonePhase = math.Mod(tonePhase+2*math.Pi*tone/float64(rate), 2*math.Pi)
	}
	return buf
}

func constantBuffer(n int, value byte) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = value
	}
	return buf
}

func iqBuffer(pairs int, i, q byte) []byte {
	buf := make([]byte, 2*pairs)
	for k := 0; k < pairs; k++ {
		buf[2*k], buf[2*k+1] = i, q
	}
	return buf
}
