package aiff

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	extendedSize     = 10
	extendedBias     = 16383
	extendedMaxExpon = 0x7FFF
	extendedSignBit  = 0x8000
)

// Extended is an 80-bit big-endian extended precision float: 1 sign bit,
// 15-bit exponent biased by 16383 and a 64-bit mantissa with an explicit
// integer bit.
type Extended [extendedSize]byte

// NewExtended encodes f.
func NewExtended(f float64) Extended {
	return EncodeExtended(f)
}

// Float64 decodes x.
func (x Extended) Float64() float64 {
	return DecodeExtended(x)
}

// String returns the upper-case hex form of the 10 bytes.
func (x Extended) String() string {
	return fmt.Sprintf("%X", x[:])
}

// EncodeExtended converts num to the 80-bit extended format.
// NaN and infinities share the infinity encoding (exponent 0x7FFF, zero
// mantissa). Negative zero encodes as positive zero.
func EncodeExtended(num float64) Extended {
	var (
		sign   int
		expon  int
		hiMant uint32
		loMant uint32
	)

	if num < 0 {
		sign = extendedSignBit
		num = -num
	}

	if num != 0 {
		fMant, e := math.Frexp(num)
		expon = e

		if expon > extendedBias+1 || !(fMant < 1) {
			expon = sign | extendedMaxExpon
		} else {
			expon += extendedBias - 1
			if expon < 0 {
				// denormalized
				fMant = math.Ldexp(fMant, expon)
				expon = 0
			}

			expon |= sign

			fMant = math.Ldexp(fMant, 32)
			fsMant := math.Floor(fMant)
			hiMant = floatToUnsigned(fsMant)

			fMant = math.Ldexp(fMant-fsMant, 32)
			fsMant = math.Floor(fMant)
			loMant = floatToUnsigned(fsMant)
		}
	}

	var out Extended

	binary.BigEndian.PutUint16(out[0:2], uint16(expon))
	binary.BigEndian.PutUint32(out[2:6], hiMant)
	binary.BigEndian.PutUint32(out[6:10], loMant)

	return out
}

// DecodeExtended converts an 80-bit extended float back to a float64.
// An all-ones exponent decodes as an infinity carrying the sign bit.
func DecodeExtended(b Extended) float64 {
	raw := binary.BigEndian.Uint16(b[0:2])
	expon := int(raw &^ extendedSignBit)
	hiMant := binary.BigEndian.Uint32(b[2:6])
	loMant := binary.BigEndian.Uint32(b[6:10])

	var f float64

	switch {
	case expon == 0 && hiMant == 0 && loMant == 0:
		f = 0
	case expon == extendedMaxExpon:
		f = math.Inf(1)
	default:
		expon -= extendedBias
		f = math.Ldexp(float64(hiMant), expon-31)
		f += math.Ldexp(float64(loMant), expon-63)
	}

	if raw&extendedSignBit != 0 {
		return -f
	}

	return f
}

// floatToUnsigned maps f in [0, 2^32) onto a uint32 by shifting it into the
// signed 32-bit range first.
func floatToUnsigned(f float64) uint32 {
	return uint32(int64(f-2147483648.0)+2147483647) + 1
}
