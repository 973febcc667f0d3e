// Package wavsource reads RIFF/WAVE files as a stream of normalized float32
// samples, ready to be fed to an AIFF encoder.
package wavsource
