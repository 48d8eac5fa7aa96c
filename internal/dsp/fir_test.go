package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFIR_Ramp(t *testing.T) {
	k := BuildFIR(5, false)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, k.Weights)
	assert.Equal(t, 10, k.Sum)
}

func TestBuildFIR_Symmetric(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{1, []int{1}},
		{4, []int{1, 2, 2, 1}},
		{5, []int{1, 2, 3, 2, 1}},
	}
	for _, tt := range tests {
		k := BuildFIR(tt.n, true)
		assert.Equal(t, tt.want, k.Weights, "n=%d", tt.n)

		sum := 0
		for _, w := range tt.want {
			sum += w
		}
		assert.Equal(t, sum, k.Sum, "n=%d", tt.n)
	}

	k := BuildFIR(42, true)
	for i := 0; i < 21; i++ {
		assert.Equal(t, k.Weights[i], k.Weights[41-i], "tap %d", i)
	}
}

func TestBuildFIR_Empty(t *testing.T) {
	assert.Empty(t, BuildFIR(0, false).Weights)
}

func TestKernel_Apply(t *testing.T) {
	k := BuildFIR(4, false)
	assert.Equal(t, 40, k.Apply(60))

	// A single zero tap has no usable gain; pass the sum through.
	assert.Equal(t, 7, BuildFIR(1, false).Apply(7))
}
