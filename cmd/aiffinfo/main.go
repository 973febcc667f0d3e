// This tool prints the header of the passed aiff file and checks that the
// patched size fields match the file.
package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/aiff"
	goaiff "github.com/go-audio/aiff"
	"github.com/sirupsen/logrus"
)

const missingPathMessage = "You must pass the path of the file to inspect"

var (
	errMissingPath = errors.New("missing path argument")
	errTooShort    = errors.New("file is shorter than an aiff header")
	errNotAiff     = errors.New("not an aiff file")
)

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	logrus.WithError(err).Fatal("failed to inspect file")
}

type headerInfo struct {
	formSize   uint32
	channels   uint16
	frames     uint32
	bitDepth   uint16
	sampleRate aiff.Extended
	ssndSize   uint32
}

func readHeader(r io.ReaderAt) (headerInfo, error) {
	raw := make([]byte, aiff.HeaderSize)

	_, err := r.ReadAt(raw, 0)
	if err != nil {
		return headerInfo{}, fmt.Errorf("%w: %w", errTooShort, err)
	}

	if [4]byte(raw[0:4]) != aiff.FormID || [4]byte(raw[8:12]) != aiff.AIFFID ||
		[4]byte(raw[12:16]) != aiff.CIDComm || [4]byte(raw[38:42]) != aiff.CIDSsnd {
		return headerInfo{}, errNotAiff
	}

	info := headerInfo{
		formSize: binary.BigEndian.Uint32(raw[4:8]),
		channels: binary.BigEndian.Uint16(raw[20:22]),
		frames:   binary.BigEndian.Uint32(raw[22:26]),
		bitDepth: binary.BigEndian.Uint16(raw[26:28]),
		ssndSize: binary.BigEndian.Uint32(raw[42:46]),
	}
	copy(info.sampleRate[:], raw[28:38])

	return info, nil
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	info, err := readHeader(file)
	if err != nil {
		return err
	}

	rate := info.sampleRate.Float64()
	bps := (int64(info.bitDepth) + 7) / 8
	wantSSND := int64(info.frames)*int64(info.channels)*bps + 8

	fmt.Fprintf(out, "Channels: %d\n", info.channels)
	fmt.Fprintf(out, "Frames: %d\n", info.frames)
	fmt.Fprintf(out, "BitDepth: %d\n", info.bitDepth)
	fmt.Fprintf(out, "SampleRate: %v (0x%s)\n", rate, info.sampleRate)

	if rate > 0 {
		fmt.Fprintf(out, "Duration: %.6fs\n", float64(info.frames)/rate)
	}

	fmt.Fprintf(out, "FORM size: %d (file %d bytes)\n", info.formSize, stat.Size())
	fmt.Fprintf(out, "SSND size: %d\n", info.ssndSize)

	consistent := int64(info.formSize)+8 == stat.Size() && int64(info.ssndSize) == wantSSND
	fmt.Fprintf(out, "Consistent: %t\n", consistent)

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	dec := goaiff.NewDecoder(file)
	dec.ReadInfo()

	if format := dec.Format(); format == nil || format.NumChannels != int(info.channels) ||
		uint32(dec.NumSampleFrames) != info.frames || dec.BitDepth != info.bitDepth {
		fmt.Fprintln(out, "Decoder: mismatch")
		return nil
	}

	fmt.Fprintln(out, "Decoder: ok")

	return nil
}
