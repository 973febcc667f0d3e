// Package aiff provides a streaming AIFF encoder for Go.
//
// The encoder writes 16 or 24-bit big-endian PCM into a FORM/COMM/SSND
// container one sample at a time. Header fields that depend on the amount of
// audio (FORM size, frame count, SSND size) are written as placeholders when
// the encoder is created and patched when it is closed, so memory use does not
// grow with the length of the stream.
//
// The sample rate is stored as an 80-bit extended float. EncodeExtended and
// DecodeExtended expose that codec directly.
//
// Optional NAME, AUTH, "(c) " and ANNO text chunks as well as arbitrary raw
// chunks can be appended after the sound data:
//
//   - Encoder.Metadata
//   - RawChunks() []RawChunk
//   - SetRawChunks([]RawChunk)
package aiff
