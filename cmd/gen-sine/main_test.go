package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/aiff"
	goaiff "github.com/go-audio/aiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunGeneratesAiffFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "sine.aif")

	err := run([]string{"-output", outPath, "-length", "0.01", "-frequency", "220"})
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	dec := goaiff.NewDecoder(f)
	require.True(t, dec.IsValidFile(), "generated file is not a valid aiff")

	assert.Equal(t, 48000, dec.SampleRate)
	assert.EqualValues(t, 16, dec.BitDepth)
	assert.EqualValues(t, 1, dec.NumChans)
	assert.EqualValues(t, 480, dec.NumSampleFrames)
}

func TestRunFileSize(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		frames   int
		chans    int
		bitDepth int
	}{
		{"defaults", []string{"-length", "0.005"}, 240, 1, 16},
		{"stereo 24-bit", []string{"-length", "0.01", "-rate", "44100", "-channels", "2", "-bitdepth", "24"}, 441, 2, 24},
		{"saw", []string{"-length", "0.002", "-rate", "22050", "-wave", "saw"}, 45, 1, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outPath := filepath.Join(t.TempDir(), "out.aif")

			err := run(append([]string{"-output", outPath}, tt.args...))
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}

			data, err := os.ReadFile(outPath)
			if err != nil {
				t.Fatal(err)
			}

			if int64(len(data)) != aiff.FileSize(tt.frames, tt.chans, tt.bitDepth) {
				t.Fatalf("size=%d, want %d", len(data), aiff.FileSize(tt.frames, tt.chans, tt.bitDepth))
			}

			if got := binary.BigEndian.Uint32(data[22:26]); int(got) != tt.frames {
				t.Fatalf("frames=%d, want %d", got, tt.frames)
			}
		})
	}
}

func TestRunWritesTextChunks(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "named.aif")

	err := run([]string{"-output", outPath, "-length", "0.001", "-name", "A4", "-author", "me"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	if got := binary.BigEndian.Uint32(data[4:8]); int(got)+8 != len(data) {
		t.Fatalf("FORM size %d doesn't match length %d", got, len(data))
	}

	tail := string(data[len(data)-20:])
	if tail != "NAME\x00\x00\x00\x02A4AUTH\x00\x00\x00\x02me" {
		t.Fatalf("unexpected trailing chunks %q", tail)
	}
}

func TestRunFlagParseError(t *testing.T) {
	assert.Error(t, run([]string{"-length", "not-a-number"}))
}

func TestRunInvalidParams(t *testing.T) {
	tests := [][]string{
		{"-length", "0"},
		{"-length", "3601"},
		{"-rate", "384000"},
		{"-frequency", "-1"},
		{"-wave", "square"},
	}

	for _, args := range tests {
		outPath := filepath.Join(t.TempDir(), "never.aif")

		err := run(append([]string{"-output", outPath}, args...))
		require.ErrorIs(t, err, errInvalidParams, "args %v", args)

		_, err = os.Stat(outPath)
		assert.True(t, os.IsNotExist(err), "run(%v) created the output file", args)
	}
}

func TestRunInvalidOutputPath(t *testing.T) {
	err := run([]string{"-output", "/nonexistent/dir/file.aif", "-length", "0.001"})
	assert.Error(t, err)
}

func TestRunUnsupportedBitDepth(t *testing.T) {
	err := run([]string{"-output", filepath.Join(t.TempDir(), "x.aif"), "-length", "0.001", "-bitdepth", "8"})
	assert.ErrorIs(t, err, aiff.ErrUnsupportedBitDepth)
}
