package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/cwbudde/aiff"
	"github.com/sirupsen/logrus"
)

const (
	maxDurationSeconds = 3600
	maxSampleRate      = 192000
)

var errInvalidParams = errors.New("invalid generator parameters")

func main() {
	err := run(os.Args[1:])
	if err != nil {
		logrus.WithError(err).Fatal("gen-sine failed")
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-sine", flag.ContinueOnError)

	output := flagSet.String("output", "output.aif", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 5, "length in seconds of output file")
	sampleRate := flagSet.Float64("rate", 48000, "sample rate in hertz")
	bitDepth := flagSet.Int("bitdepth", 16, "bits per sample, 16 or 24")
	channels := flagSet.Int("channels", 1, "number of channels, every channel carries the same signal")
	wave := flagSet.String("wave", "sine", "waveform to generate: sine or saw")
	name := flagSet.String("name", "", "optional NAME chunk")
	author := flagSet.String("author", "", "optional AUTH chunk")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	osc, err := oscillator(*wave, *frequency)
	if err != nil {
		return err
	}

	if *length <= 0 || *length > maxDurationSeconds {
		return fmt.Errorf("%w: length %v must be in (0, %d]", errInvalidParams, *length, maxDurationSeconds)
	}

	if *sampleRate <= 0 || *sampleRate > maxSampleRate {
		return fmt.Errorf("%w: rate %v must be in (0, %d]", errInvalidParams, *sampleRate, maxSampleRate)
	}

	if *frequency < 0 {
		return fmt.Errorf("%w: negative frequency %v", errInvalidParams, *frequency)
	}

	logrus.WithFields(logrus.Fields{
		"length":    *length,
		"wave":      *wave,
		"frequency": *frequency,
		"rate":      *sampleRate,
	}).Info("generating aiff")

	enc := aiff.Create(*output, *bitDepth, *channels, *sampleRate)
	if !enc.IsValid() {
		return fmt.Errorf("error creating %s: %w", *output, enc.Err())
	}
	defer enc.Close()

	if *name != "" || *author != "" {
		enc.Metadata = &aiff.Metadata{Name: *name, Author: *author}
	}

	numFrames := aiff.SamplesNumFromDuration(time.Duration(*length*float64(time.Second)), *sampleRate)

	for i := range numFrames {
		v := osc(float64(i) / *sampleRate)

		for range *channels {
			err := enc.WriteSample(v)
			if err != nil {
				return err
			}
		}
	}

	return enc.Close()
}

func oscillator(wave string, frequency float64) (func(t float64) float64, error) {
	switch wave {
	case "sine":
		return func(t float64) float64 {
			return math.Sin(frequency * 2 * math.Pi * t)
		}, nil
	case "saw":
		return func(t float64) float64 {
			phase := frequency * t
			return 2 * (phase - math.Floor(phase+0.5))
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown wave %q", errInvalidParams, wave)
	}
}
