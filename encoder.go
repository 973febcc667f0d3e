package aiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
)

var (
	// ErrUnsupportedBitDepth is reported for bit depths other than 16 and 24.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	// ErrInvalidChannelCount is reported when fewer than one channel is requested.
	ErrInvalidChannelCount = errors.New("invalid channel count")
	// ErrEncoderClosed is returned when samples are written after Close.
	ErrEncoderClosed = errors.New("encoder already closed")
	// ErrFrameSize is returned by WriteFrame when the frame doesn't hold one
	// sample per channel.
	ErrFrameSize = errors.New("frame size doesn't match the channel count")

	errNilWriter       = errors.New("can't write to a nil writer")
	errNilBuffer       = errors.New("can't add a nil buffer")
	errChannelMismatch = errors.New("buffer channel count doesn't match the encoder")
)

// Encoder streams PCM samples into an AIFF container.
//
// The header is written as soon as the encoder is created. Close must be
// called for the size fields to be correct; use defer right after creation.
type Encoder struct {
	w      io.WriteSeeker
	closer io.Closer
	buf    []byte

	SampleRate float64
	BitDepth   int
	NumChans   int

	// Metadata contains text chunks appended after the sound data.
	Metadata *Metadata
	// UnknownChunks contains extra chunks appended after the sound data.
	UnknownChunks []RawChunk

	WrittenBytes int
	samples      int
	err          error
	closed       bool
}

// Create creates the file at path and writes the provisional header.
// Failures don't panic or return an error: the returned encoder is invalid,
// ignores writes and reports the cause through Err.
func Create(path string, bitDepth, numChans int, sampleRate float64) *Encoder {
	e := &Encoder{
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		NumChans:   numChans,
	}

	e.err = e.validate()
	if e.err != nil {
		return e
	}

	file, err := os.Create(path)
	if err != nil {
		e.err = fmt.Errorf("failed to create %s: %w", path, err)
		return e
	}

	e.w = file
	e.closer = file
	e.err = e.writeHeader()

	return e
}

// NewEncoder writes the provisional header to w and returns an encoder
// streaming into it. w must be positioned at its start. The writer is not
// closed by Close.
func NewEncoder(w io.WriteSeeker, bitDepth, numChans int, sampleRate float64) *Encoder {
	e := &Encoder{
		w:          w,
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		NumChans:   numChans,
	}

	e.err = e.validate()
	if e.err != nil {
		return e
	}

	e.err = e.writeHeader()

	return e
}

func (e *Encoder) validate() error {
	if e.BitDepth != 16 && e.BitDepth != 24 {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, e.BitDepth)
	}

	if e.NumChans < 1 || e.NumChans > 0xFFFF {
		return fmt.Errorf("%w: %d", ErrInvalidChannelCount, e.NumChans)
	}

	return nil
}

// IsValid reports whether the encoder was opened successfully and no write
// has failed since.
func (e *Encoder) IsValid() bool {
	return e != nil && e.w != nil && e.err == nil
}

// Err returns the error that invalidated the encoder, if any.
func (e *Encoder) Err() error {
	if e == nil {
		return errNilWriter
	}

	return e.err
}

// Samples returns the number of samples written so far, all channels
// combined.
func (e *Encoder) Samples() int {
	return e.samples
}

// Frames returns the number of complete frames written so far.
func (e *Encoder) Frames() int {
	if e.NumChans < 1 {
		return 0
	}

	return e.samples / e.NumChans
}

// Format describes the stream in go-audio terms.
func (e *Encoder) Format() *audio.Format {
	return &audio.Format{
		NumChannels: e.NumChans,
		SampleRate:  int(e.SampleRate),
	}
}

// AddBE serializes and adds the passed value using big endian.
func (e *Encoder) AddBE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.BigEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write big endian: %w", err)
	}

	return nil
}

func (e *Encoder) writeHeader() error {
	if e.w == nil {
		return errNilWriter
	}

	// FORM chunk, size patched on close
	err := e.AddBE(FormID)
	if err != nil {
		return fmt.Errorf("error encoding the FORM id - %w", err)
	}

	err = e.AddBE(uint32(0))
	if err != nil {
		return fmt.Errorf("error encoding the FORM size - %w", err)
	}

	err = e.AddBE(AIFFID)
	if err != nil {
		return fmt.Errorf("error encoding the form type - %w", err)
	}

	// COMM chunk, frame count patched on close
	err = e.AddBE(CIDComm)
	if err != nil {
		return fmt.Errorf("error encoding the COMM id - %w", err)
	}

	err = e.AddBE(uint32(commChunkSize))
	if err != nil {
		return fmt.Errorf("error encoding the COMM size - %w", err)
	}

	err = e.AddBE(uint16(e.NumChans))
	if err != nil {
		return fmt.Errorf("error encoding the number of channels - %w", err)
	}

	err = e.AddBE(uint32(0))
	if err != nil {
		return fmt.Errorf("error encoding the frame count - %w", err)
	}

	err = e.AddBE(uint16(e.BitDepth))
	if err != nil {
		return fmt.Errorf("error encoding bits per sample - %w", err)
	}

	err = e.AddBE(EncodeExtended(e.SampleRate))
	if err != nil {
		return fmt.Errorf("error encoding the sample rate - %w", err)
	}

	// SSND chunk, size patched on close
	err = e.AddBE(CIDSsnd)
	if err != nil {
		return fmt.Errorf("error encoding the SSND id - %w", err)
	}

	err = e.AddBE(uint32(0))
	if err != nil {
		return fmt.Errorf("error encoding the SSND size - %w", err)
	}

	// offset and block size
	err = e.AddBE([2]uint32{})
	if err != nil {
		return fmt.Errorf("error encoding the SSND offset - %w", err)
	}

	return nil
}

func (e *Encoder) write(p []byte) error {
	n, err := e.w.Write(p)
	e.WrittenBytes += n

	if err != nil {
		e.err = fmt.Errorf("failed to write samples: %w", err)
		return e.err
	}

	return nil
}

// WriteSample quantizes one sample and appends it to the sound data.
// Samples are interleaved: write NumChans samples per frame, in channel
// order. Writes to an invalid encoder are ignored.
func (e *Encoder) WriteSample(sample float64) error {
	if !e.IsValid() {
		return nil
	}

	if e.closed {
		return ErrEncoderClosed
	}

	return e.writeSample(sample)
}

func (e *Encoder) writeSample(sample float64) error {
	n := bytesPerSample(e.BitDepth)
	if cap(e.buf) < n {
		e.buf = make([]byte, n)
	}

	putSample(e.buf[:n], sample, e.BitDepth)

	err := e.write(e.buf[:n])
	if err != nil {
		return err
	}

	e.samples++

	return nil
}

// WriteFrame writes one sample per channel.
func (e *Encoder) WriteFrame(frame ...float64) error {
	if !e.IsValid() {
		return nil
	}

	if len(frame) != e.NumChans {
		return fmt.Errorf("%w: got %d samples for %d channels", ErrFrameSize, len(frame), e.NumChans)
	}

	for _, s := range frame {
		err := e.WriteSample(s)
		if err != nil {
			return err
		}
	}

	return nil
}

// Write encodes and writes the interleaved samples of buf.
// Don't forget to Close() the encoder or the file won't be valid.
func (e *Encoder) Write(buf *audio.Float32Buffer) error {
	if buf == nil {
		return errNilBuffer
	}

	if !e.IsValid() {
		return nil
	}

	if e.closed {
		return ErrEncoderClosed
	}

	if buf.Format != nil && buf.Format.NumChannels != 0 && buf.Format.NumChannels != e.NumChans {
		return fmt.Errorf("%w: %d != %d", errChannelMismatch, buf.Format.NumChannels, e.NumChans)
	}

	// performance tweak: encode the whole buffer and write it at once
	size := bytesPerSample(e.BitDepth)
	total := len(buf.Data) * size

	if cap(e.buf) < total {
		e.buf = make([]byte, total)
	}

	data := e.buf[:total]
	for i, v := range buf.Data {
		putSample(data[i*size:(i+1)*size], float64(v), e.BitDepth)
	}

	err := e.write(data)
	if err != nil {
		return err
	}

	e.samples += len(buf.Data)

	return nil
}

// Close pads the sound data to a whole frame, appends the optional chunks and
// patches the FORM size, frame count and SSND size. It runs once; later
// calls return nil. The underlying writer is only closed when the encoder
// was made with Create.
func (e *Encoder) Close() (err error) {
	if e == nil || e.closed {
		return nil
	}

	e.closed = true

	if e.closer != nil {
		defer func() {
			cerr := e.closer.Close()
			if err == nil && cerr != nil {
				err = fmt.Errorf("failed to close the output: %w", cerr)
			}
		}()
	}

	if !e.IsValid() {
		return nil
	}

	return e.finalize()
}

func (e *Encoder) finalize() error {
	// fill missing samples to complete the last frame
	if rem := e.samples % e.NumChans; rem != 0 {
		for range e.NumChans - rem {
			err := e.writeSample(0)
			if err != nil {
				return fmt.Errorf("failed to pad the last frame: %w", err)
			}
		}
	}

	dataSize := e.samples * bytesPerSample(e.BitDepth)

	if e.hasTrailingChunks() {
		if dataSize%2 == 1 {
			err := e.write([]byte{0})
			if err != nil {
				return fmt.Errorf("failed to pad the sound data: %w", err)
			}
		}

		err := e.writeTrailingChunks()
		if err != nil {
			return err
		}
	}

	// sizes are 32-bit fields and wrap for streams beyond 4GiB
	fields := []struct {
		offset int64
		value  uint32
		name   string
	}{
		{offsetFormSize, uint32(e.WrittenBytes - 8), "FORM size"},
		{offsetFrameCount, uint32(e.samples / e.NumChans), "frame count"},
		{offsetSsndSize, uint32(dataSize + ssndHeaderLen), "SSND size"},
	}

	for _, f := range fields {
		if _, err := e.w.Seek(f.offset, io.SeekStart); err != nil {
			return fmt.Errorf("failed to seek to the %s position: %w", f.name, err)
		}

		err := binary.Write(e.w, binary.BigEndian, f.value)
		if err != nil {
			return fmt.Errorf("%w when writing the %s", err, f.name)
		}
	}

	// jump back to the end of the file.
	if _, err := e.w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end of file: %w", err)
	}

	if f, ok := e.w.(*os.File); ok {
		return f.Sync()
	}

	return nil
}
