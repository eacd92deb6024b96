// SPDX-License-Identifier: EPL-2.0

package utils

// FullScale returns the magnitude of the most negative sample of a signed
// integer PCM format with the given bit depth. Unknown depths are treated
// as 16-bit.
func FullScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

// IntToFloat32 converts signed integer samples of bitDepth into dst as
// float32 in [-1,1). It converts min(len(dst), len(src)) samples and returns
// that count.
func IntToFloat32(dst []float32, src []int, bitDepth int) int {
	n := min(len(dst), len(src))
	scale := 1 / FullScale(bitDepth)

	for i := range n {
		dst[i] = float32(src[i]) * scale
	}

	return n
}
