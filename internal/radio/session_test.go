package radio

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-fm-receiver/internal/capture"
	"go-fm-receiver/internal/config"
)

type memorySink struct {
	mu      sync.Mutex
	samples []float32
}

func (m *memorySink) Write(samples []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = append(m.samples, samples...)
	return nil
}

func (m *memorySink) Close() error { return nil }

// tuneRecorder remembers every centre frequency it is tuned to.
type tuneRecorder struct {
	*capture.Transmitter
	mu      sync.Mutex
	centers []int
}

func (r *tuneRecorder) Tune(sampleRate, centerFreq int) error {
	r.mu.Lock()
	r.centers = append(r.centers, centerFreq)
	r.mu.Unlock()
	return r.Transmitter.Tune(sampleRate, centerFreq)
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Speaker = false
	cfg.RingBufferSize = 256 * 1024
	return cfg
}

func testLog() *logrus.Entry {
	logger, _ := logtest.NewNullLogger()
	return logrus.NewEntry(logger)
}

func TestSession_RawFileToEOF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "silence.cu8")
	raw := make([]byte, 8403)
	for i := range raw {
		raw[i] = 128
	}
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	cfg := testConfig()
	src, err := capture.Open(path, testLog())
	require.NoError(t, err)
	defer src.Close()

	sink := &memorySink{}
	s := New(cfg, src, sink, testLog())
	require.NoError(t, s.Run(context.Background()))

	stats := s.Stats()
	assert.Equal(t, 1, stats.Buffers)
	assert.Equal(t, 3, stats.Dropped, "partial rotation group dropped")
	assert.Equal(t, 99, stats.Samples, "4200 samples decimate to 100 pairs")
	assert.Equal(t, make([]float32, 99), sink.samples)
}

func TestSession_SyntheticStationWithDuration(t *testing.T) {
	cfg := testConfig()
	cfg.Duration = 300 * time.Millisecond
	cfg.AudioRate = 48000

	tx := capture.NewTransmitter(cfg.Frequency, 1000, 5000)
	sink := &memorySink{}
	s := New(cfg, tx, sink, testLog())

	require.NoError(t, s.Run(context.Background()))

	stats := s.Stats()
	assert.Positive(t, stats.Buffers)
	assert.Equal(t, stats.Samples, len(sink.samples))
	assert.Positive(t, stats.Samples)
	assert.Zero(t, stats.Squelched)
}

func TestSession_Scan(t *testing.T) {
	cfg := testConfig()
	cfg.Duration = 250 * time.Millisecond
	cfg.ScanStep = 50_000
	cfg.ScanInterval = 20 * time.Millisecond

	src := &tuneRecorder{Transmitter: capture.NewTransmitter(cfg.Frequency, 1000, 5000)}
	s := New(cfg, src, &memorySink{}, testLog())
	require.NoError(t, s.Run(context.Background()))

	src.mu.Lock()
	defer src.mu.Unlock()
	require.GreaterOrEqual(t, len(src.centers), 2)
	assert.Equal(t, 99_752_000, src.centers[0])
	for i := 1; i < len(src.centers); i++ {
		assert.Equal(t, 50_000, src.centers[i]-src.centers[i-1], "retune %d", i)
	}
	assert.Equal(t, len(src.centers)-1, s.Stats().Retunes)
}

func TestSession_Squelch(t *testing.T) {
	cfg := testConfig()
	cfg.Duration = 100 * time.Millisecond
	cfg.SquelchLevel = 5

	tx := capture.NewTransmitter(cfg.Frequency, 1000, 5000)
	tx.Amplitude = 0
	s := New(cfg, tx, &memorySink{}, testLog())
	require.NoError(t, s.Run(context.Background()))

	stats := s.Stats()
	assert.Positive(t, stats.Buffers)
	assert.Equal(t, stats.Buffers, stats.Squelched)
}

// cancelSink cancels the session after its first write.
type cancelSink struct {
	memorySink
	cancel context.CancelFunc
	writes int
}

func (c *cancelSink) Write(samples []float32) error {
	c.writes++
	c.cancel()
	return c.memorySink.Write(samples)
}

func TestSession_StopsDecodingWhenCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "silence.cu8")
	raw := make([]byte, 64*1024)
	for i := range raw {
		raw[i] = 128
	}
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	cfg := testConfig()
	cfg.ChunkSize = 8 * 1024
	src, err := capture.Open(path, testLog())
	require.NoError(t, err)
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sink := &cancelSink{cancel: cancel}
	s := New(cfg, src, sink, testLog())

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
	assert.Equal(t, 1, sink.writes, "buffered IQ discarded after cancel")
	assert.Equal(t, 1, s.Stats().Buffers)
}

func TestSession_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tx := capture.NewTransmitter(99_500_000, 1000, 5000)
	s := New(testConfig(), tx, &memorySink{}, testLog())
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}

func TestSession_TuneFailure(t *testing.T) {
	src := &failingSource{}
	s := New(testConfig(), src, &memorySink{}, testLog())
	assert.ErrorIs(t, s.Run(context.Background()), errTune)
}

var errTune = errors.New("tuner offline")

type failingSource struct{}

func (failingSource) Tune(int, int) error        { return errTune }
func (failingSource) Read(p []byte) (int, error) { return 0, io.EOF }
func (failingSource) Close() error               { return nil }
