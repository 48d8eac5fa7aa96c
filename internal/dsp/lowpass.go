package dsp

// Zero levels of unsigned 8-bit samples by position in a rotation group.
// Rotate90 negates with 255-x, which is -(x-128)-1, so the bytes it
// complements are centred on 127.
var rotatedBias = [8]int{128, 128, 127, 128, 127, 127, 128, 127}

// lowPassSquare decimates buf with a square window, writing interleaved I/Q
// pairs into d.lowPass. Partial windows carry over to the next call. buf must
// start on a rotation group boundary.
func (d *Decoder) lowPassSquare(buf []byte, bias *[8]int) int {
	i2 := 0
	for i := 0; i < len(buf); i += 2 {
		d.nowR += int(buf[i]) - bias[i&7]
		d.nowJ += int(buf[i+1]) - bias[(i+1)&7]
		d.index++
		if d.index < d.tuning.DownSample {
			continue
		}
		d.lowPass[i2] = d.nowR * d.tuning.OutputScale
		d.lowPass[i2+1] = d.nowJ * d.tuning.OutputScale
		d.nowR, d.nowJ, d.index = 0, 0, 0
		i2 += 2
	}
	return i2
}

// lowPassFIR is lowPassSquare with each sample weighted by its position in
// the window.
func (d *Decoder) lowPassFIR(buf []byte, bias *[8]int) int {
	i2 := 0
	for i := 0; i < len(buf); i += 2 {
		w := d.fir.Weights[d.index]
		d.nowR += (int(buf[i]) - bias[i&7]) * w
		d.nowJ += (int(buf[i+1]) - bias[(i+1)&7]) * w
		d.index++
		if d.index < d.tuning.DownSample {
			continue
		}
		d.lowPass[i2] = d.fir.Apply(d.nowR) * d.tuning.OutputScale
		d.lowPass[i2+1] = d.fir.Apply(d.nowJ) * d.tuning.OutputScale
		d.nowR, d.nowJ, d.index = 0, 0, 0
		i2 += 2
	}
	return i2
}

// DownSampleSimple box-averages signal in place by factor and returns the
// new length. A trailing partial group is dropped, not carried.
func DownSampleSimple(signal []int16, factor int) int {
	if factor < 2 {
		return len(signal)
	}
	n := len(signal) / factor
	for i := 0; i < n; i++ {
		sum := 0
		for _, v := range signal[i*factor : (i+1)*factor] {
			sum += int(v)
		}
		signal[i] = int16(sum / factor)
	}
	return n
}
