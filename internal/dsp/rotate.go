package dsp

// Rotate90 mixes the buffer down by a quarter of its sample rate, in place.
//
// Each group of four complex samples is multiplied by 1, j, -1, -j. With
// unsigned 8-bit samples negation is 255-x, so the product is only swaps and
// complements:
//
//	[0, 1, -3, 2, -4, -5, 7, -6]
//
// Trailing bytes that do not fill a group of eight are left untouched;
// Decoder.Process rejects such buffers before rotating.
func Rotate90(buf []byte) {
	n := len(buf) &^ 7
	for i := 0; i < n; i += 8 {
		b := buf[i : i+8 : i+8]

		b[2], b[3] = 255-b[3], b[2]
		b[4], b[5] = 255-b[4], 255-b[5]
		b[6], b[7] = b[7], 255-b[6]
	}
}
