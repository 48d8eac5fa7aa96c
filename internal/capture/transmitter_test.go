package capture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransmitter_RequiresTune(t *testing.T) {
	tx := NewTransmitter(99_500_000, 1000, 5000)
	_, err := tx.Read(make([]byte, 8))
	assert.ErrorIs(t, err, ErrNotTuned)
}

func TestTransmitter_CarrierAtCentre(t *testing.T) {
	tx := NewTransmitter(99_500_000, 0, 0)
	require.NoError(t, tx.Tune(1_008_000, 99_500_000))

	buf := make([]byte, 64)
	n, err := tx.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 64, n)
	for i := 0; i < n; i += 2 {
		assert.Equal(t, byte(228), buf[i])
		assert.Equal(t, byte(128), buf[i+1])
	}
}

func TestTransmitter_OffsetRotates(t *testing.T) {
	const rate = 1_000_000
	tx := NewTransmitter(99_500_000, 0, 0)
	// Station rate/4 above the centre advances a quarter turn per sample.
	require.NoError(t, tx.Tune(rate, 99_500_000-rate/4))

	buf := make([]byte, 8)
	_, err := tx.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{228, 128, 128, 228, 28, 128, 128, 28}, buf)
}

func TestTransmitter_OddLength(t *testing.T) {
	tx := NewTransmitter(99_500_000, 1000, 5000)
	require.NoError(t, tx.Tune(1_008_000, 99_752_000))

	n, err := tx.Read(make([]byte, 9))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}

func TestQuantize(t *testing.T) {
	assert.Equal(t, byte(0), quantize(-500))
	assert.Equal(t, byte(255), quantize(500))
	assert.Equal(t, byte(128), quantize(math.SmallestNonzeroFloat64))
}
