package dsp

// Kernel is an integer FIR window applied across one decimation window.
type Kernel struct {
	Weights []int
	Sum     int
}

// BuildFIR creates the decimation kernel for a window of n samples.
//
// By default the kernel is a rising ramp, w[i] = i. With symmetric set it is
// a triangle, w[i] = min(i+1, n-i). Either way, fancier windows cost the
// same per sample, so a simple one is used.
func BuildFIR(n int, symmetric bool) Kernel {
	if n < 1 {
		return Kernel{}
	}
	k := Kernel{Weights: make([]int, n)}
	for i := range k.Weights {
		if symmetric {
			k.Weights[i] = min(i+1, n-i)
		} else {
			k.Weights[i] = i
		}
	}
	for _, w := range k.Weights {
		k.Sum += w
	}
	return k
}

// Apply scales a weighted window sum back to the gain of an unweighted one:
// point = sum(sample[i] * w[i]) * n / sum(w).
func (k Kernel) Apply(acc int) int {
	if k.Sum == 0 {
		return acc
	}
	return acc * len(k.Weights) / k.Sum
}
