package dsp

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotate90_Group(t *testing.T) {
	buf := []byte{10, 20, 30, 40, 50, 60, 70, 80}
	Rotate90(buf)
	assert.Equal(t, []byte{10, 20, 215, 30, 205, 195, 80, 185}, buf)
}

func TestRotate90_FourTimesIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	orig := make([]byte, 4096)
	for i := range orig {
		orig[i] = byte(rng.IntN(256))
	}

	buf := append([]byte(nil), orig...)
	for range 4 {
		Rotate90(buf)
	}
	assert.Equal(t, orig, buf)
}

func TestRotate90_TrailingBytesUntouched(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	Rotate90(buf)
	assert.Equal(t, []byte{9, 10}, buf[8:])
}

// With the complement bias removed, rotation is exact multiplication by
// 1, j, -1, -j.
func TestRotate90_MultipliesByPowersOfJ(t *testing.T) {
	buf := iqBuffer(8, 200, 50)
	Rotate90(buf)

	x := complex(72, -78)
	turn := complex(1, 0)
	for k := 0; k < 8; k++ {
		got := complex(
			float64(int(buf[2*k])-rotatedBias[(2*k)&7]),
			float64(int(buf[2*k+1])-rotatedBias[(2*k+1)&7]),
		)
		assert.Equal(t, x*turn, got, "sample %d", k)
		turn *= 1i
	}
}
