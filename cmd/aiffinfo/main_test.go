package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/aiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, chans int, samples []float64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "in.aif")

	enc := aiff.Create(path, 16, chans, 44100)
	for _, s := range samples {
		require.NoError(t, enc.WriteSample(s))
	}

	require.NoError(t, enc.Close())

	return path
}

func TestRunRequiresPath(t *testing.T) {
	var out bytes.Buffer

	assert.ErrorIs(t, run(nil, &out), errMissingPath)
}

func TestRunPrintsHeader(t *testing.T) {
	path := writeFile(t, 2, []float64{0.1, 0.2, 0.3, 0.4, 0.5})

	var outBuf bytes.Buffer
	require.NoError(t, run([]string{path}, &outBuf))

	out := outBuf.String()
	checks := []string{
		"Channels: 2",
		"Frames: 3",
		"BitDepth: 16",
		"SampleRate: 44100 (0x400EAC44000000000000)",
		"FORM size: 58 (file 66 bytes)",
		"SSND size: 20",
		"Consistent: true",
		"Decoder: ok",
	}

	for _, c := range checks {
		assert.Contains(t, out, c)
	}
}

func TestRunDetectsUnpatchedHeader(t *testing.T) {
	path := writeFile(t, 1, []float64{0.5, 0.5})

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	copy(data[4:8], []byte{0, 0, 0, 0})
	require.NoError(t, os.WriteFile(path, data, 0o644))

	var outBuf bytes.Buffer
	require.NoError(t, run([]string{path}, &outBuf))

	assert.Contains(t, outBuf.String(), "Consistent: false")
}

func TestRunRejectsOtherFiles(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.aif")
	require.NoError(t, os.WriteFile(short, []byte("FORM"), 0o644))

	wav := filepath.Join(dir, "file.wav")
	require.NoError(t, os.WriteFile(wav, bytes.Repeat([]byte("RIFF"), 20), 0o644))

	var outBuf bytes.Buffer

	assert.ErrorIs(t, run([]string{short}, &outBuf), errTooShort)
	assert.ErrorIs(t, run([]string{wav}, &outBuf), errNotAiff)
}

func TestRunInvalidPath(t *testing.T) {
	var outBuf bytes.Buffer

	assert.Error(t, run([]string{"/nonexistent/path.aif"}, &outBuf))
}
