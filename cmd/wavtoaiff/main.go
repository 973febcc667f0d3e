// This tool converts a wav file into an aiff file and stores it in the same
// folder as the source unless -output is set.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/cwbudde/aiff"
	"github.com/cwbudde/aiff/internal/wavsource"
	"github.com/go-audio/audio"
	"github.com/sirupsen/logrus"
)

const bufferSize = 4096

var errMissingPath = errors.New("you must set the -path flag")

func main() {
	outPath, err := run(os.Args[1:])
	if err != nil {
		logrus.WithError(err).Fatal("conversion failed")
	}

	logrus.WithField("output", outPath).Info("wav file converted")
}

func run(args []string) (string, error) {
	flagSet := flag.NewFlagSet("wavtoaiff", flag.ContinueOnError)

	path := flagSet.String("path", "", "The path to the wav file to convert to aiff")
	output := flagSet.String("output", "", "The aiff file to write, defaults to the source path with an .aif extension")
	bitDepth := flagSet.Int("bitdepth", 0, "output bit depth, 16 or 24; 0 picks the closest to the source")

	err := flagSet.Parse(args)
	if err != nil {
		return "", err
	}

	if *path == "" {
		return "", errMissingPath
	}

	sourcePath := expandHome(*path)

	file, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("invalid path %s: %w", sourcePath, err)
	}
	defer file.Close()

	src, err := wavsource.Open(file)
	if err != nil {
		return "", fmt.Errorf("invalid WAV file: %w", err)
	}

	outPath := *output
	if outPath == "" {
		outPath = sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + ".aif"
	}

	depth := *bitDepth
	if depth == 0 {
		depth = outputBitDepth(int(src.BitDepth))
	}

	logrus.WithFields(logrus.Fields{
		"source":   sourcePath,
		"channels": src.NumChans,
		"rate":     src.SampleRate,
		"bits":     src.BitDepth,
	}).Infof("converting to %d-bit aiff", depth)

	enc := aiff.Create(outPath, depth, int(src.NumChans), float64(src.SampleRate))
	if !enc.IsValid() {
		return "", fmt.Errorf("failed to create %s: %w", outPath, enc.Err())
	}
	defer enc.Close()

	err = convert(src, enc)
	if err != nil {
		return "", err
	}

	err = enc.Close()
	if err != nil {
		return "", fmt.Errorf("failed to finalize %s: %w", outPath, err)
	}

	return outPath, nil
}

func convert(src *wavsource.Source, enc *aiff.Encoder) error {
	buf := &audio.Float32Buffer{Data: make([]float32, bufferSize*int(src.NumChans))}

	for {
		n, err := src.PCMBuffer(buf)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to decode samples: %w", err)
		}

		chunk := &audio.Float32Buffer{Data: buf.Data[:n], Format: buf.Format}

		err = enc.Write(chunk)
		if err != nil {
			return fmt.Errorf("failed to encode samples: %w", err)
		}
	}
}

// outputBitDepth maps a source bit depth to 16 or 24 bits.
func outputBitDepth(source int) int {
	if source > 16 {
		return 24
	}

	return 16
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	usr, err := user.Current()
	if err != nil {
		logrus.WithError(err).Warn("failed to get the user home directory")
		return path
	}

	return strings.Replace(path, "~", usr.HomeDir, 1)
}
