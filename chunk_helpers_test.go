package aiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidFormAIFFHdr   = errors.New("invalid FORM/AIFF header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

func parseAIFFChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "FORM" || string(data[8:12]) != "AIFF" {
		return nil, errInvalidFormAIFFHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.BigEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func findChunk(chunks []testChunk, id string) (*testChunk, int) {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i], i
		}
	}

	return nil, -1
}

type header struct {
	formSize uint32
	channels uint16
	frames   uint32
	bitDepth uint16
	rate     float64
	ssndSize uint32
}

func readHeader(path string) (header, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return header{}, nil, err
	}

	if len(data) < HeaderSize {
		return header{}, data, errFileTooSmall
	}

	var rate Extended
	copy(rate[:], data[28:38])

	return header{
		formSize: binary.BigEndian.Uint32(data[4:8]),
		channels: binary.BigEndian.Uint16(data[20:22]),
		frames:   binary.BigEndian.Uint32(data[22:26]),
		bitDepth: binary.BigEndian.Uint16(data[26:28]),
		rate:     DecodeExtended(rate),
		ssndSize: binary.BigEndian.Uint32(data[42:46]),
	}, data, nil
}

var errWriteFailed = errors.New("write failed")

// memFile is an in-memory io.WriteSeeker. Writes fail once limit bytes were
// written when limit is positive.
type memFile struct {
	data  []byte
	pos   int
	limit int
	total int
}

func (m *memFile) Write(p []byte) (int, error) {
	if m.limit > 0 && m.total+len(p) > m.limit {
		return 0, errWriteFailed
	}

	end := m.pos + len(p)
	if end > len(m.data) {
		m.data = append(m.data, make([]byte, end-len(m.data))...)
	}

	copy(m.data[m.pos:end], p)
	m.pos = end
	m.total += len(p)

	return len(p), nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var abs int64

	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(m.pos) + offset
	case io.SeekEnd:
		abs = int64(len(m.data)) + offset
	default:
		return 0, errors.New("invalid whence")
	}

	if abs < 0 {
		return 0, errors.New("negative position")
	}

	m.pos = int(abs)

	return abs, nil
}
