package wavsource

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE

	scalePCMInt8  = 127.5
	scalePCMInt16 = 32768.0
	scalePCMInt24 = 8388608.0
	scalePCMInt32 = 2147483648.0
)

var (
	// ErrNotWav is returned when the input isn't a RIFF/WAVE file.
	ErrNotWav = errors.New("not a WAV file")
	// ErrPCMChunkNotFound indicates a WAV file without a data chunk.
	ErrPCMChunkNotFound = errors.New("PCM chunk not found in audio file")
	// ErrUnsupportedFormat is returned for sample encodings that can't be
	// decoded.
	ErrUnsupportedFormat = errors.New("unsupported wav format")

	errFmtNotFound = errors.New("fmt chunk not found")
)

// Source decodes the data chunk of a WAV file.
type Source struct {
	r      io.ReadSeeker
	parser *riff.Parser
	pcm    *riff.Chunk

	NumChans    uint16
	BitDepth    uint16
	SampleRate  uint32
	AudioFormat uint16
	// PCMSize is the size in bytes of the data chunk.
	PCMSize int

	decode  func(io.Reader, []byte) (float32, error)
	scratch []byte
}

// Open parses the WAV headers and positions r at the start of the sample
// data.
func Open(r io.ReadSeeker) (*Source, error) {
	s := &Source{
		r:      r,
		parser: riff.New(r),
	}

	err := s.readHeaders()
	if err != nil {
		return nil, err
	}

	s.decode, err = sampleDecodeFunc(int(s.BitDepth), s.AudioFormat)
	if err != nil {
		return nil, err
	}

	s.scratch = make([]byte, bytesPerSample(int(s.BitDepth)))

	return s, nil
}

// Format returns the go-audio format of the stream.
func (s *Source) Format() *audio.Format {
	return &audio.Format{
		NumChannels: int(s.NumChans),
		SampleRate:  int(s.SampleRate),
	}
}

// Frames returns the number of frames held by the data chunk.
func (s *Source) Frames() int {
	frameSize := int(s.NumChans) * bytesPerSample(int(s.BitDepth))
	if frameSize == 0 {
		return 0
	}

	return s.PCMSize / frameSize
}

// PCMBuffer fills buf.Data with the next interleaved samples and returns how
// many were read. io.EOF is returned once the data chunk is exhausted.
func (s *Source) PCMBuffer(buf *audio.Float32Buffer) (int, error) {
	if buf == nil {
		return 0, nil
	}

	buf.Format = s.Format()
	buf.SourceBitDepth = int(s.BitDepth)

	n := 0
	for n < len(buf.Data) {
		v, err := s.decode(s.pcm, s.scratch)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}

		if err != nil {
			return n, err
		}

		buf.Data[n] = v
		n++
	}

	if n == 0 {
		return 0, io.EOF
	}

	return n, nil
}

func (s *Source) readHeaders() error {
	id, size, err := s.parser.IDnSize()
	if err != nil {
		return fmt.Errorf("failed to read chunk ID and size: %w", err)
	}

	s.parser.ID = id
	if s.parser.ID != riff.RiffID {
		return fmt.Errorf("%w: %s", ErrNotWav, s.parser.ID)
	}

	s.parser.Size = size

	err = binary.Read(s.r, binary.BigEndian, &s.parser.Format)
	if err != nil {
		return fmt.Errorf("failed to read format: %w", err)
	}

	if s.parser.Format != riff.WavFormatID {
		return fmt.Errorf("%w: form type %s", ErrNotWav, s.parser.Format)
	}

	var chunk *riff.Chunk

	for {
		chunk, err = s.parser.NextChunk()
		if err != nil {
			if s.NumChans == 0 {
				return errFmtNotFound
			}

			return ErrPCMChunkNotFound
		}

		switch chunk.ID {
		case riff.FmtID:
			err = s.decodeFmtChunk(chunk)
			if err != nil {
				return err
			}
		case riff.DataFormatID:
			if s.NumChans == 0 {
				return errFmtNotFound
			}

			s.pcm = chunk
			s.PCMSize = chunk.Size

			return nil
		default:
			chunk.Drain()
		}
	}
}

func (s *Source) decodeFmtChunk(chunk *riff.Chunk) error {
	var hdr struct {
		FormatTag      uint16
		NumChannels    uint16
		SampleRate     uint32
		AvgBytesPerSec uint32
		BlockAlign     uint16
		BitsPerSample  uint16
	}

	err := chunk.ReadLE(&hdr)
	if err != nil {
		return fmt.Errorf("failed to read fmt chunk: %w", err)
	}

	s.AudioFormat = hdr.FormatTag
	s.NumChans = hdr.NumChannels
	s.SampleRate = hdr.SampleRate
	s.BitDepth = hdr.BitsPerSample

	if chunk.Size > 16 && s.AudioFormat == formatExtensible {
		var extraSize uint16

		err = chunk.ReadLE(&extraSize)
		if err != nil {
			return fmt.Errorf("failed to read fmt extension size: %w", err)
		}

		extra := make([]byte, extraSize)

		_, err = io.ReadFull(chunk, extra)
		if err != nil {
			return fmt.Errorf("failed to read fmt extension data: %w", err)
		}

		// the sub format GUID starts with the effective format tag
		if len(extra) >= 22 {
			s.AudioFormat = binary.LittleEndian.Uint16(extra[6:8])
		}
	}

	chunk.Drain()

	if s.NumChans < 1 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, s.NumChans)
	}

	return nil
}

func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/8 + 1
}

func normalizePCMInt(sample int, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32((float64(sample) - scalePCMInt8) / scalePCMInt8)
	case 16:
		return float32(float64(sample) / scalePCMInt16)
	case 24:
		return float32(float64(sample) / scalePCMInt24)
	case 32:
		return float32(float64(sample) / scalePCMInt32)
	default:
		return 0
	}
}

// sampleDecodeFunc returns a function reading one little-endian sample and
// normalizing it to [-1, 1]. 8-bit samples are unsigned, all other integer
// sizes are signed.
func sampleDecodeFunc(bitsPerSample int, wavFormat uint16) (func(io.Reader, []byte) (float32, error), error) {
	if wavFormat == formatIEEEFloat {
		switch bitsPerSample {
		case 32:
			return func(r io.Reader, buf []byte) (float32, error) {
				_, err := io.ReadFull(r, buf[:4])
				if err != nil {
					return 0, err
				}

				return math.Float32frombits(binary.LittleEndian.Uint32(buf[:4])), nil
			}, nil
		case 64:
			return func(r io.Reader, buf []byte) (float32, error) {
				_, err := io.ReadFull(r, buf[:8])
				if err != nil {
					return 0, err
				}

				return float32(math.Float64frombits(binary.LittleEndian.Uint64(buf[:8]))), nil
			}, nil
		default:
			return nil, fmt.Errorf("%w: %d-bit float", ErrUnsupportedFormat, bitsPerSample)
		}
	}

	if wavFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, wavFormat)
	}

	switch {
	case bitsPerSample == 8:
		return func(r io.Reader, buf []byte) (float32, error) {
			_, err := io.ReadFull(r, buf[:1])
			return normalizePCMInt(int(buf[0]), 8), err
		}, nil
	case bitsPerSample > 8 && bitsPerSample <= 16:
		return func(r io.Reader, buf []byte) (float32, error) {
			_, err := io.ReadFull(r, buf[:2])
			return normalizePCMInt(int(int16(binary.LittleEndian.Uint16(buf[:2]))), 16), err
		}, nil
	case bitsPerSample > 16 && bitsPerSample <= 24:
		return func(r io.Reader, buf []byte) (float32, error) {
			_, err := io.ReadFull(r, buf[:3])
			if err != nil {
				return 0, err
			}

			return normalizePCMInt(int(audio.Int24LETo32(buf[:3])), 24), nil
		}, nil
	case bitsPerSample > 24 && bitsPerSample <= 32:
		return func(r io.Reader, buf []byte) (float32, error) {
			_, err := io.ReadFull(r, buf[:4])
			return normalizePCMInt(int(int32(binary.LittleEndian.Uint32(buf[:4]))), 32), err
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, bitsPerSample)
	}
}
