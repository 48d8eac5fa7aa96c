package dsp

import "errors"

var (
	// ErrEmptyBuffer is returned when Process is given no data.
	ErrEmptyBuffer = errors.New("dsp: empty iq buffer")

	// ErrBufferLength is returned when a raw buffer is not a whole number of
	// 4-sample rotation groups (8 bytes).
	ErrBufferLength = errors.New("dsp: iq buffer length must be a multiple of 8")

	// ErrCapacityExceeded is returned when a buffer would decimate to more
	// samples than the decoder's scratch buffers can hold.
	ErrCapacityExceeded = errors.New("dsp: decimated signal exceeds buffer capacity")
)
