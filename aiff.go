package aiff

import (
	"math"
	"time"
)

var (
	// FormID is the chunk ID of the outer container chunk.
	FormID = [4]byte{'F', 'O', 'R', 'M'}
	// AIFFID is the form type of an uncompressed AIFF file.
	AIFFID = [4]byte{'A', 'I', 'F', 'F'}
	// CIDComm is the chunk ID of the common chunk.
	CIDComm = [4]byte{'C', 'O', 'M', 'M'}
	// CIDSsnd is the chunk ID of the sound data chunk.
	CIDSsnd = [4]byte{'S', 'S', 'N', 'D'}
)

const (
	// HeaderSize is the number of bytes written before the first sample.
	HeaderSize = 54

	commChunkSize = 18
	ssndHeaderLen = 8

	offsetFormSize   = 4
	offsetFrameCount = 22
	offsetSsndSize   = 42
)

func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/8 + 1
}

// SamplesNumFromDuration returns how many frames a stream of the given
// duration holds at sampleRate, rounding partial frames up.
func SamplesNumFromDuration(dur time.Duration, sampleRate float64) int {
	if sampleRate <= 0 || dur <= 0 {
		return 0
	}

	return int(math.Ceil(dur.Seconds() * sampleRate))
}

// FileSize returns the size of a finished file without extra chunks holding
// frames frames.
func FileSize(frames, numChans, bitDepth int) int64 {
	return HeaderSize + int64(frames)*int64(numChans)*int64(bytesPerSample(bitDepth))
}
