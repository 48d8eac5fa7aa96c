// Package playback delivers decoded audio to speakers and files.
package playback

import "errors"

// Sink accepts buffers of mono audio in roughly [-1, 1].
type Sink interface {
	Write(samples []float32) error
	Close() error
}

// Float32ToInt16 scales x by gain and converts it to 16-bit PCM, clamping
// to full scale.
func Float32ToInt16(x float32, gain float64) int16 {
	v := float64(x) * gain
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	// 32767 for both ends avoids overflow at +1.
	return int16(v * 32767.0)
}

// Multi fans audio out to several sinks.
type Multi []Sink

// Write writes to every sink, stopping at the first error.
func (m Multi) Write(samples []float32) error {
	for _, s := range m {
		if err := s.Write(samples); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
