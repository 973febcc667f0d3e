package aiff

import "math"

const (
	maxPCMInt16   = 32767
	scalePCMInt16 = 32768.0
	maxPCMInt24   = 8388607
	scalePCMInt24 = 8388608.0
)

// clampSample limits value to [-1, 1]. NaN is mapped to silence.
func clampSample(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}

	if value < -1 {
		return -1
	}

	if value > 1 {
		return 1
	}

	return value
}

// scaleSample converts a clamped sample to an integer code. Positive values
// scale by peak and negative values by scale so that both 1.0 and -1.0 map to
// the extremes of the signed range. The fraction is truncated.
func scaleSample(value, scale float64, peak int32) int32 {
	value = clampSample(value)
	if value >= 0 {
		return int32(value * float64(peak))
	}

	return int32(value * scale)
}

// Quantize16 converts a normalized sample to a signed 16-bit code.
func Quantize16(sample float64) int16 {
	return int16(scaleSample(sample, scalePCMInt16, maxPCMInt16))
}

// Quantize24 converts a normalized sample to a signed 24-bit code held in an
// int32.
func Quantize24(sample float64) int32 {
	return scaleSample(sample, scalePCMInt24, maxPCMInt24)
}

// PutSample16 writes the big-endian 16-bit code of sample into dst[0:2].
func PutSample16(dst []byte, sample float64) {
	_ = dst[1]

	s := Swap16(uint16(Quantize16(sample)))
	dst[0] = byte(s)
	dst[1] = byte(s >> 8)
}

// PutSample24 writes the big-endian 24-bit code of sample into dst[0:3].
// The 32-bit code is byte swapped first and the trailing byte dropped, which
// keeps the three significant bytes in big-endian order.
func PutSample24(dst []byte, sample float64) {
	_ = dst[2]

	s := Swap32(uint32(Quantize24(sample))) >> 8
	dst[0] = byte(s)
	dst[1] = byte(s >> 8)
	dst[2] = byte(s >> 16)
}

func putSample(dst []byte, sample float64, bitDepth int) {
	if bitDepth == 24 {
		PutSample24(dst, sample)
		return
	}

	PutSample16(dst, sample)
}
